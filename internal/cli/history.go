package cli

import (
	"snipbook-cli/internal/model"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the bounded most-recent-first execution history",
	}
	cmd.AddCommand(newHistoryListCmd(app))
	cmd.AddCommand(newHistoryClearCmd(app))
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history entries, most recent first",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entries := db.History
			if entries == nil {
				entries = []model.HistoryEntry{}
			}
			return writeOut(cmd, app, map[string]any{"data": entries})
		},
	}
	return cmd
}

func newHistoryClearCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop all history entries",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			db.History = nil
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"cleared": true}})
		},
	}
	return cmd
}
