package cli

import (
	"errors"
	"fmt"
	"os"

	"taskpad/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.cfg
			return writeOut(cmd, app, map[string]any{
				"path":           configPath(app),
				"dir":            c.Dir,
				"remote":         c.Remote,
				"format":         c.Format,
				"requestTimeout": c.RequestTimeout.String(),
				"serve":          map[string]any{"addr": c.Serve.Addr},
				"tui":            map[string]any{"debugLog": c.TUI.DebugLog, "noColor": c.TUI.NoColor},
			})
		},
	})
	cmd.AddCommand(newConfigInitCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(app)
			if path == "" {
				return writeErr(cmd, errors.New("cannot resolve config path"))
			}
			if !overwrite {
				if _, err := os.Stat(path); err == nil {
					return writeErr(cmd, fmt.Errorf("config already exists: %s (use --overwrite)", path))
				}
			}
			if err := config.Save(path, app.cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"path": path, "written": true})
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing config file")
	return cmd
}

func configPath(app *App) string {
	if app.ConfigPath != "" {
		return app.ConfigPath
	}
	p, _ := config.Path()
	return p
}
