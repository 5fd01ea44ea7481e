package tui

import (
	"log/slog"
	"time"

	"taskpad/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// view is a mounted screen. Views own their fetch and mutation state; the root model
// only routes messages and swaps views on navigation.
type view interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	resize(w, h int)
	capturesInput() bool
}

type appModel struct {
	client  api.Client
	log     *slog.Logger
	timeout time.Duration

	startPath string
	route     route
	home      *homeModel
	project   *projectModel

	width  int
	height int
}

func newAppModel(client api.Client, log *slog.Logger, startPath string, timeout time.Duration) appModel {
	if log == nil {
		log = discardLogger()
	}
	if startPath == "" {
		startPath = homePath
	}
	return appModel{
		client:    client,
		log:       log,
		timeout:   timeout,
		startPath: startPath,
		width:     80,
		height:    24,
	}
}

func (m appModel) Init() tea.Cmd {
	return navigate(m.startPath)
}

func (m appModel) current() view {
	switch {
	case m.project != nil:
		return m.project
	case m.home != nil:
		return m.home
	}
	return nil
}

// goTo mounts the view for path. Moving between two project routes keeps the project
// view mounted and only switches its id; any other transition mounts a fresh view.
func (m appModel) goTo(path string) (appModel, tea.Cmd) {
	r, err := parseRoute(path)
	if err != nil {
		m.log.Warn("navigate", "path", path, "error", err)
		if m.current() != nil {
			return m, nil
		}
		r = route{name: routeHome}
	}
	m.log.Debug("navigate", "path", r.path())

	switch r.name {
	case routeProject:
		if m.project != nil {
			m.route = r
			return m, m.project.setProjectID(r.projectID)
		}
		m.home = nil
		m.project = newProjectModel(m.client, m.log, navigate, m.timeout)
		m.project.resize(m.width, m.height)
		m.route = r
		return m, tea.Batch(m.project.Init(), m.project.setProjectID(r.projectID))
	default:
		m.project = nil
		m.home = newHomeModel(m.client, m.log, navigate, m.timeout)
		m.home.resize(m.width, m.height)
		m.route = r
		return m, m.home.Init()
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case navigateMsg:
		return m.goTo(msg.path)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if v := m.current(); v != nil {
			v.resize(m.width, m.height)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if v := m.current(); v == nil || !v.capturesInput() {
				return m, tea.Quit
			}
		}
	}

	v := m.current()
	if v == nil {
		return m, nil
	}
	return m, v.Update(msg)
}

func (m appModel) View() string {
	v := m.current()
	if v == nil {
		return ""
	}
	return v.View()
}
