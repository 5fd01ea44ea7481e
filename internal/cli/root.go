package cli

import (
	"fmt"
	"strings"

	"taskpad/internal/api"
	"taskpad/internal/config"
	"taskpad/internal/format"
	"taskpad/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Remote     string
	ConfigPath string
	Format     string
	PrettyJSON bool

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskpad",
		Short:        "Taskpad projects and tasks (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskpad

  # Open a project directly (shortcut for: taskpad open <project-id>)
  taskpad proj-k3x9w2ab

  # Scriptable commands
  taskpad projects create --name "Groceries"
  taskpad tasks add proj-k3x9w2ab --title "Milk"

  # Share a store over HTTP, then point another machine at it
  taskpad serve --addr 0.0.0.0:3336
  taskpad --remote http://host:3336 projects list
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, "")
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.ConfigPath)
		if err != nil {
			return writeErr(cmd, err)
		}
		// Flags win over env and file.
		if strings.TrimSpace(app.Dir) != "" {
			cfg.Dir = strings.TrimSpace(app.Dir)
		}
		if strings.TrimSpace(app.Remote) != "" {
			cfg.Remote = strings.TrimRight(strings.TrimSpace(app.Remote), "/")
		}
		if strings.TrimSpace(app.Format) != "" {
			if !format.Valid(app.Format) {
				return writeErr(cmd, fmt.Errorf("unknown format: %s", app.Format))
			}
			cfg.Format = strings.ToLower(strings.TrimSpace(app.Format))
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to the local store dir (env "+config.EnvDir+")")
	cmd.PersistentFlags().StringVar(&app.Remote, "remote", "", "Base URL of a taskpad server; overrides the local store (env "+config.EnvRemote+")")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.yaml (default $"+config.EnvConfigDir+"/config.yaml or ~/.taskpad/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn) (env "+config.EnvFormat+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")

	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// localStore resolves the store directory and makes sure it exists.
func localStore(app *App) (store.Store, error) {
	dir := app.cfg.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return store.Store{}, fmt.Errorf("store dir %s: %w", dir, err)
	}
	return s, nil
}

// newClient returns the remote client when a remote is configured, else the local store.
func newClient(app *App) (api.Client, error) {
	if app.cfg.Remote != "" {
		return api.NewHTTPClient(app.cfg.Remote, app.cfg.RequestTimeout)
	}
	return localStore(app)
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), format.Envelope{Data: v}, app.cfg.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
