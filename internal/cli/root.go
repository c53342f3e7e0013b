package cli

import (
	"fmt"
	"os"
	"strings"

	"snipbook-cli/internal/format"
	"snipbook-cli/internal/store"
	"snipbook-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "snipbook",
		Short:        "Snippet library CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  snipbook

  # Scriptable commands
  snipbook items list

  # Execute a snippet (prompts for {{arg$n:...}} placeholders)
  snipbook exec snip-abc

  # Direct item lookup (shortcut for: snipbook items show <item-id>)
  snipbook snip-abc
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SNIPBOOK_DIR", ""), "Path to store dir (advanced: overrides workspace resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("SNIPBOOK_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SNIPBOOK_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newTabsCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newExecCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newSettingsCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s, db)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" && app.Workspace == "" {
		// A project-local .snipbook (found by walking up from the cwd)
		// beats workspace resolution, like a project-local git repo.
		if cwd, err := os.Getwd(); err == nil {
			if d, ok := store.DiscoverDir(cwd); ok {
				dir = d
				app.Dir = dir
			}
		}
	}
	if dir == "" {
		// Workspace-first:
		// 1) --workspace
		// 2) ~/.snipbook/config.json currentWorkspace
		// 3) default workspace ("default")
		if app.Workspace != "" {
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		} else if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
			d, err := store.WorkspaceDir(cfg.CurrentWorkspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			app.Workspace = cfg.CurrentWorkspace
			dir = d
		} else {
			app.Workspace = "default"
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		}
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func errNotFound(kind, id string) error {
	return fmt.Errorf("%s not found: %s", kind, id)
}
