package cli

import (
	"strings"

	"snipbook-cli/internal/search"

	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search names, commands and descriptions (substring, store order)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			query := strings.Join(cargs, " ")

			matches := search.Search(db, query)
			out := make([]map[string]any, 0, len(matches))
			for _, m := range matches {
				entry := map[string]any{
					"item": m.Item,
					"span": m.Span,
					"path": search.PathOf(db, m.Item.ID),
				}
				if target, ok := search.NavigationTarget(db, m.Item.ID); ok {
					entry["target"] = target
				}
				out = append(out, entry)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}
