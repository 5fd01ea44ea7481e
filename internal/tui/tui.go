package tui

import (
	"time"

	"taskpad/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Client api.Client
	// ProjectID opens the project view directly; empty starts at the project list.
	ProjectID string
	DebugLog  string
	NoColor   bool
	Timeout   time.Duration
}

func Run(opts Options) error {
	applyColorProfilePreference(opts.NoColor)

	log, closeLog := newDebugLogger(opts.DebugLog)
	defer closeLog()

	start := homePath
	if opts.ProjectID != "" {
		start = projectPath(opts.ProjectID)
	}
	m := newAppModel(opts.Client, log, start, opts.Timeout)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
