package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"snipbook-cli/internal/args"
	"snipbook-cli/internal/dispatch"
	"snipbook-cli/internal/model"

	"github.com/spf13/cobra"
)

func newExecCmd(app *App) *cobra.Command {
	var modeFlag string
	var presets []string
	cmd := &cobra.Command{
		Use:   "exec <snippet-id>",
		Short: "Resolve a snippet's placeholders and hand it to the target sink",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, found := db.FindItem(cargs[0])
			if !found {
				return writeErr(cmd, errNotFound("snippet", cargs[0]))
			}
			if it.Kind != model.KindSnippet {
				return writeErr(cmd, errors.New("not a snippet: "+cargs[0]))
			}

			mode := db.Settings.ExecMode
			if modeFlag != "" {
				m, err := parseExecMode(modeFlag)
				if err != nil {
					return writeErr(cmd, err)
				}
				mode = m
			}
			if mode == model.ExecModeLocked {
				return writeErr(cmd, dispatch.ErrLocked)
			}

			presetValues, err := parsePresets(presets)
			if err != nil {
				return writeErr(cmd, err)
			}

			prompt := stdinPrompt(cmd.InOrStdin(), cmd.ErrOrStderr(), presetValues)
			resolved, err := args.Resolve(cmd.Context(), it.Command, presetValues, prompt)
			if err != nil {
				if errors.Is(err, args.ErrCanceled) {
					// Cancellation aborts atomically: nothing is
					// dispatched and nothing enters the history.
					fmt.Fprintln(cmd.ErrOrStderr(), "canceled")
					return nil
				}
				return writeErr(cmd, err)
			}

			d := dispatch.Dispatcher{Stdout: cmd.OutOrStdout()}
			if err := d.Dispatch(resolved, mode); err != nil {
				return writeErr(cmd, err)
			}

			db.History = dispatch.Record(db.History, model.HistoryKindCommand, resolved, db.Settings.HistoryLimit, time.Now().UTC())
			if err := s.Save(db); err != nil {
				// The sink already has the command; a persistence
				// failure must not pretend the execution didn't happen.
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: history not saved: "+err.Error())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Override exec mode (terminal|editor|locked)")
	cmd.Flags().StringArrayVar(&presets, "set", nil, "Preset an argument value as <id>=<value> (skips its prompt)")
	return cmd
}

func parseExecMode(s string) (model.ExecMode, error) {
	switch model.ExecMode(strings.ToLower(strings.TrimSpace(s))) {
	case model.ExecModeTerminal:
		return model.ExecModeTerminal, nil
	case model.ExecModeEditor:
		return model.ExecModeEditor, nil
	case model.ExecModeLocked:
		return model.ExecModeLocked, nil
	default:
		return "", errors.New("invalid mode: " + s + " (expected terminal|editor|locked)")
	}
}

func parsePresets(presets []string) (map[int]string, error) {
	out := map[int]string{}
	for _, p := range presets {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, errors.New("invalid --set value: " + p + " (expected <id>=<value>)")
		}
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, errors.New("invalid --set id: " + k)
		}
		out[id] = v
	}
	return out, nil
}

// stdinPrompt reads one line per placeholder. EOF counts as
// cancellation, which is distinct from an empty answer: a bare newline
// with no preset is a legitimate empty value. Preset ids never prompt.
func stdinPrompt(in io.Reader, prompts io.Writer, presets map[int]string) args.PromptFunc {
	r := bufio.NewReader(in)
	return func(ph args.Placeholder, previous string) (string, error) {
		if v, ok := presets[ph.ID]; ok {
			return v, nil
		}
		if previous != "" {
			fmt.Fprintf(prompts, "%s [%s]: ", ph.Label, previous)
		} else {
			fmt.Fprintf(prompts, "%s: ", ph.Label)
		}
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", args.ErrCanceled
			}
			return "", err
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if line == "" && previous != "" {
			return previous, nil
		}
		return line, nil
	}
}
