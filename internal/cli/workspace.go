package cli

import (
	"snipbook-cli/internal/store"

	"github.com/spf13/cobra"
)

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage named workspaces under ~/.snipbook/workspaces",
	}
	cmd.AddCommand(newWorkspaceListCmd(app))
	cmd.AddCommand(newWorkspaceCurrentCmd(app))
	cmd.AddCommand(newWorkspaceUseCmd(app))
	return cmd
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known workspaces",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			names, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": names})
		},
	}
	return cmd
}

func newWorkspaceCurrentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the current workspace",
		RunE: func(cmd *cobra.Command, cargs []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			name := cfg.CurrentWorkspace
			if name == "" {
				name = "default"
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"workspace": name}})
		},
	}
	return cmd
}

func newWorkspaceUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cargs []string) error {
			name, err := store.NormalizeWorkspaceName(cargs[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.CurrentWorkspace = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"workspace": name}})
		},
	}
	return cmd
}
