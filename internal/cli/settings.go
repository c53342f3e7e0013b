package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change workspace settings",
	}
	cmd.AddCommand(newSettingsGetCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))
	return cmd
}

func newSettingsGetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Settings})
		},
	}
	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var execMode string
	var historyLimit string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings (exec mode, history limit)",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			if execMode == "" && historyLimit == "" {
				return writeErr(cmd, errors.New("nothing to set; use --exec-mode and/or --history-limit"))
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if execMode != "" {
				m, err := parseExecMode(execMode)
				if err != nil {
					return writeErr(cmd, err)
				}
				db.Settings.ExecMode = m
			}
			if historyLimit != "" {
				n, err := strconv.Atoi(historyLimit)
				if err != nil || n <= 0 {
					return writeErr(cmd, errors.New("invalid --history-limit: "+historyLimit))
				}
				db.Settings.HistoryLimit = n
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Settings})
		},
	}
	cmd.Flags().StringVar(&execMode, "exec-mode", "", "Exec mode (terminal|editor|locked)")
	cmd.Flags().StringVar(&historyLimit, "history-limit", "", "History capacity (entries beyond it are dropped)")
	return cmd
}
