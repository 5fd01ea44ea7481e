package tui

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const homePath = "/home"

type routeName int

const (
	routeHome routeName = iota
	routeProject
)

type route struct {
	name      routeName
	projectID string
}

func (r route) path() string {
	if r.name == routeProject {
		return projectPath(r.projectID)
	}
	return homePath
}

func projectPath(id string) string {
	return "/projects/" + url.PathEscape(id)
}

func parseRoute(path string) (route, error) {
	path = strings.TrimSpace(path)
	switch {
	case path == "" || path == "/" || path == homePath:
		return route{name: routeHome}, nil
	case strings.HasPrefix(path, "/projects/"):
		raw := strings.TrimPrefix(path, "/projects/")
		id, err := url.PathUnescape(raw)
		if err != nil {
			return route{}, fmt.Errorf("route %q: %w", path, err)
		}
		id = strings.TrimSpace(id)
		if id == "" || strings.Contains(id, "/") {
			return route{}, fmt.Errorf("route %q: invalid project id", path)
		}
		return route{name: routeProject, projectID: id}, nil
	default:
		return route{}, fmt.Errorf("unknown route %q", path)
	}
}

type navigateMsg struct {
	path string
}

// navigate is the router capability handed to views.
func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}
