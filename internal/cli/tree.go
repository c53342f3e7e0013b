package cli

import (
	"fmt"
	"strings"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/store"

	"github.com/spf13/cobra"
)

func newItemsTreeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the full hierarchy (tabs, folders, items) as text",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var b strings.Builder
			seen := map[string]bool{}
			if db.HasRootItems() {
				b.WriteString("(root)\n")
				writeTreeLevel(&b, db, model.RootID, 1, seen)
			}
			for _, tab := range db.Tabs() {
				fmt.Fprintf(&b, "%s  [%s]\n", tab.Name, tab.ID)
				writeTreeLevel(&b, db, tab.ID, 1, seen)
			}
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
	return cmd
}

// writeTreeLevel renders one sibling group. The seen set terminates
// rendering on malformed stores with parent cycles.
func writeTreeLevel(b *strings.Builder, db *store.DB, parentID string, depth int, seen map[string]bool) {
	// ChildrenOf already excludes tabs, so the root listing here shows
	// only loose top-level items.
	for _, it := range db.ChildrenOf(parentID) {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		indent := strings.Repeat("  ", depth)
		switch it.Kind {
		case model.KindSeparator:
			fmt.Fprintf(b, "%s----\n", indent)
		case model.KindFolder:
			marker := "+"
			if it.Expanded {
				marker = "-"
			}
			fmt.Fprintf(b, "%s%s %s  [%s]\n", indent, marker, it.Name, it.ID)
			writeTreeLevel(b, db, it.ID, depth+1, seen)
		default:
			fmt.Fprintf(b, "%s%s  [%s]  %s\n", indent, it.Name, it.ID, it.Command)
		}
	}
}
