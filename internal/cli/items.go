package cli

import (
	"errors"
	"strings"
	"time"

	"snipbook-cli/internal/args"
	"snipbook-cli/internal/model"
	"snipbook-cli/internal/mutate"
	"snipbook-cli/internal/search"
	"snipbook-cli/internal/store"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage snippets, separators and folders",
	}
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsTreeCmd(app))
	cmd.AddCommand(newItemsRenameCmd(app))
	cmd.AddCommand(newItemsDescribeCmd(app))
	cmd.AddCommand(newItemsSetCommandCmd(app))
	cmd.AddCommand(newItemsColorCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsToggleCmd(app))
	return cmd
}

func parseKind(s string) (model.Kind, error) {
	switch model.Kind(strings.ToLower(strings.TrimSpace(s))) {
	case model.KindSnippet:
		return model.KindSnippet, nil
	case model.KindSeparator:
		return model.KindSeparator, nil
	case model.KindFolder:
		return model.KindFolder, nil
	case model.KindTab:
		return model.KindTab, nil
	default:
		return "", errors.New("invalid kind: " + s + " (expected snippet|separator|folder|tab)")
	}
}

func newItemsAddCmd(app *App) *cobra.Command {
	var kindFlag string
	var command string
	var description string
	var parent string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item as the last sibling under the active tab/folder context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			kind, err := parseKind(kindFlag)
			if err != nil {
				return writeErr(cmd, err)
			}

			parentID := strings.TrimSpace(parent)
			if parentID == "" {
				// Default context: the active tab ("" = root view).
				parentID = db.Settings.ActiveTabID
			}
			if parentID == "root" {
				parentID = model.RootID
			}

			now := time.Now().UTC()
			it, ok := mutate.Add(db, s, kind, cargs[0], command, parentID, now)
			if !ok {
				return writeErr(cmd, errors.New("invalid parent: "+parentID))
			}
			if description != "" {
				mutate.SetDescription(db, it.ID, description, now)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			created, _ := db.FindItem(it.ID)
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "snippet", "Item kind (snippet|separator|folder|tab)")
	cmd.Flags().StringVar(&command, "command", "", "Snippet command (may contain {{arg$n:label}} placeholders)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent folder/tab id (default: active tab; 'root' for top level)")
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var parent string
	var kindFlag string
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items (direct children of a parent, or the whole store)",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if all {
				return writeOut(cmd, app, map[string]any{"data": db.Items})
			}

			var kinds []model.Kind
			if kindFlag != "" {
				k, err := parseKind(kindFlag)
				if err != nil {
					return writeErr(cmd, err)
				}
				kinds = append(kinds, k)
			}
			p := strings.TrimSpace(parent)
			if p == "root" {
				p = model.RootID
			}
			items := db.ChildrenOf(p, kinds...)
			if items == nil {
				items = []model.Item{}
			}
			return writeOut(cmd, app, map[string]any{"data": items})
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "Parent id ('root' or empty for top level)")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "Filter by kind")
	cmd.Flags().BoolVar(&all, "all", false, "List the full ordered store, tabs included")
	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item with its ancestor path and placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, found := db.FindItem(cargs[0])
			if !found {
				return writeErr(cmd, errNotFound("item", cargs[0]))
			}
			out := map[string]any{
				"item": it,
				"path": search.PathOf(db, it.ID),
			}
			if it.Kind == model.KindSnippet {
				out["placeholders"] = args.Extract(it.Command)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newItemsRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <item-id> <name>",
		Short: "Rename an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			return editItem(cmd, app, cargs[0], func(db *store.DB, now time.Time) bool {
				return mutate.Rename(db, cargs[0], cargs[1], now)
			})
		},
	}
	return cmd
}

func newItemsDescribeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <item-id> <description>",
		Short: "Set an item's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			return editItem(cmd, app, cargs[0], func(db *store.DB, now time.Time) bool {
				return mutate.SetDescription(db, cargs[0], cargs[1], now)
			})
		},
	}
	return cmd
}

func newItemsSetCommandCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-command <item-id> <command>",
		Short: "Set a snippet's command string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			return editItem(cmd, app, cargs[0], func(db *store.DB, now time.Time) bool {
				return mutate.SetCommand(db, cargs[0], cargs[1], now)
			})
		},
	}
	return cmd
}

func newItemsColorCmd(app *App) *cobra.Command {
	var recursive bool
	cmd := &cobra.Command{
		Use:   "color <item-id> <color>",
		Short: "Set an item's color, optionally cascading to descendants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			return editItem(cmd, app, cargs[0], func(db *store.DB, now time.Time) bool {
				return mutate.ColorCascade(db, cargs[0], cargs[1], recursive, now)
			})
		},
	}
	cmd.Flags().BoolVar(&recursive, "recursive", false, "Apply the color to the whole subtree")
	return cmd
}

func newItemsToggleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <folder-id>",
		Short: "Toggle a folder's expanded state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			return editItem(cmd, app, cargs[0], func(db *store.DB, now time.Time) bool {
				return mutate.ToggleExpanded(db, cargs[0])
			})
		},
	}
	return cmd
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var before string
	var after string
	var into string
	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Move an item before/after a sibling or into a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			set := 0
			pos := mutate.PositionBefore
			ref := before
			if before != "" {
				set++
			}
			if after != "" {
				set++
				pos, ref = mutate.PositionAfter, after
			}
			if into != "" {
				set++
				pos, ref = mutate.PositionInside, into
			}
			if set != 1 {
				return writeErr(cmd, errors.New("provide exactly one of --before, --after or --into"))
			}

			if !mutate.Reparent(db, cargs[0], pos, ref, time.Now().UTC()) {
				// Structural problems (unknown ids, cycles, self-drop)
				// are a deliberate no-op in the engine; the CLI still
				// tells the user nothing moved.
				return writeErr(cmd, errors.New("move rejected (unknown id, cycle, or invalid target)"))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := db.FindItem(cargs[0])
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Move before this item id")
	cmd.Flags().StringVar(&after, "after", "", "Move after this item id")
	cmd.Flags().StringVar(&into, "into", "", "Move inside this folder/tab id")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item; children of a deleted container are promoted, not deleted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !mutate.Delete(db, cargs[0], time.Now().UTC()) {
				return writeErr(cmd, errNotFound("item", cargs[0]))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": cargs[0]}})
		},
	}
	return cmd
}

func editItem(cmd *cobra.Command, app *App, id string, apply func(*store.DB, time.Time) bool) error {
	db, s, err := loadDB(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	now := time.Now().UTC()
	if !apply(db, now) {
		return writeErr(cmd, errNotFound("item", id))
	}
	if err := s.Save(db); err != nil {
		return writeErr(cmd, err)
	}
	it, _ := db.FindItem(id)
	return writeOut(cmd, app, map[string]any{"data": it})
}
