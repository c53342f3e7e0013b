package cli

import (
	"path/filepath"

	"snipbook-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage (workspace-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			db.EnsureDefaults()
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}

			// If we're in workspace mode but no current workspace is
			// set yet, remember this one.
			if app.Workspace != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentWorkspace == "" {
					cfg.CurrentWorkspace = app.Workspace
					_ = store.SaveConfig(cfg)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        app.Dir,
					"sqlitePath": filepath.Join(app.Dir, "state.sqlite"),
				},
			})
		},
	}
	return cmd
}
