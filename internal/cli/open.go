package cli

import (
	"strings"

	"taskpad/internal/tui"

	"github.com/spf13/cobra"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <project-id>",
		Short: "Open the TUI on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, strings.TrimSpace(args[0]))
		},
	}
}

func runTUI(cmd *cobra.Command, app *App, projectID string) error {
	client, err := newClient(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(tui.Options{
		Client:    client,
		ProjectID: projectID,
		DebugLog:  app.cfg.TUI.DebugLog,
		NoColor:   app.cfg.TUI.NoColor,
		Timeout:   app.cfg.RequestTimeout,
	})
}
