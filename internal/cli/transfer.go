package cli

import (
	"fmt"
	"os"

	"snipbook-cli/internal/store"

	"github.com/spf13/cobra"
)

// Export/import speak the persistence collaborator's JSON wire shape
// ({items, settings, history}); imports are last-write-wins.

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the store as wire-format JSON to stdout",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := store.MarshalWire(db, true)
			if err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the store with wire-format JSON from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := os.ReadFile(cargs[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			db, err := store.UnmarshalWire(b)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"items": len(db.Items)},
			})
		},
	}
	return cmd
}
