package cli

import (
	"errors"
	"strings"
	"time"

	"snipbook-cli/internal/model"
	"snipbook-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newTabsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "Manage top-level tabs",
	}
	cmd.AddCommand(newTabsAddCmd(app))
	cmd.AddCommand(newTabsListCmd(app))
	cmd.AddCommand(newTabsUseCmd(app))
	return cmd
}

func newTabsAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, ok := mutate.Add(db, s, model.KindTab, cargs[0], "", model.RootID, time.Now().UTC())
			if !ok {
				return writeErr(cmd, errors.New("could not add tab"))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	return cmd
}

func newTabsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tabs (the implicit root tab first, when it exists)",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := []map[string]any{}
			if db.HasRootItems() {
				out = append(out, map[string]any{
					"id":     model.RootID,
					"name":   "(root)",
					"active": db.Settings.ActiveTabID == model.RootID,
				})
			}
			for _, tab := range db.Tabs() {
				out = append(out, map[string]any{
					"id":     tab.ID,
					"name":   tab.Name,
					"active": db.Settings.ActiveTabID == tab.ID,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newTabsUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <tab-id>",
		Short: "Switch the active tab ('root' for the implicit root tab)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(cargs[0])
			if id == "root" {
				id = model.RootID
			}
			if id != model.RootID {
				it, found := db.FindItem(id)
				if !found || it.Kind != model.KindTab {
					return writeErr(cmd, errNotFound("tab", cargs[0]))
				}
			}
			db.Settings.ActiveTabID = id
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Settings})
		},
	}
	return cmd
}
