package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type appHarness struct {
	m appModel
	p *pump
}

func newAppHarness(t *testing.T, c *fakeClient, start string) *appHarness {
	t.Helper()
	h := &appHarness{m: newAppModel(c, nil, start, time.Second)}
	h.p = &pump{t: t, followNav: true}
	h.p.update = func(msg tea.Msg) tea.Cmd {
		next, cmd := h.m.Update(msg)
		h.m = next.(appModel)
		if h.m.project != nil {
			h.m.project.spinner.Spinner.FPS = time.Hour
		}
		if h.m.home != nil {
			h.m.home.spinner.Spinner.FPS = time.Hour
		}
		return cmd
	}
	h.p.run(h.m.Init())
	return h
}

func TestApp_StartsOnProjectRoute(t *testing.T) {
	t.Parallel()

	c := seededClient()
	h := newAppHarness(t, c, projectPath("proj-a"))

	if h.m.project == nil || h.m.home != nil {
		t.Fatalf("expected project view mounted")
	}
	if h.m.route.projectID != "proj-a" {
		t.Fatalf("expected route proj-a, got %+v", h.m.route)
	}
	if h.m.project.projectName() != "Groceries" {
		t.Fatalf("expected project loaded, got %q", h.m.project.projectName())
	}
}

func TestApp_HomeOpensProjectAndBack(t *testing.T) {
	t.Parallel()

	c := seededClient()
	h := newAppHarness(t, c, "")

	if h.m.home == nil {
		t.Fatalf("expected home mounted")
	}
	if len(c.callsTo("ListProjects")) != 1 {
		t.Fatalf("expected projects fetched on mount")
	}

	h.p.keys(keyEnter)
	if h.m.project == nil || h.m.project.projectID() != "proj-a" {
		t.Fatalf("expected project view for proj-a")
	}

	h.p.keys(keyEsc)
	if h.m.project != nil || h.m.home == nil {
		t.Fatalf("expected project view unmounted after leaving")
	}
	if len(c.callsTo("ListProjects")) != 2 {
		t.Fatalf("expected fresh home to refetch projects")
	}
}

func TestApp_ProjectToProjectKeepsView(t *testing.T) {
	t.Parallel()

	c := seededClient()
	c.addProject("proj-b", "Chores")
	c.addTask("proj-b", "task-9", "Laundry", false)
	h := newAppHarness(t, c, projectPath("proj-a"))

	first := h.m.project
	h.p.send(navigateMsg{path: projectPath("proj-b")})

	if h.m.project != first {
		t.Fatalf("expected project view kept across project routes")
	}
	if h.m.project.projectID() != "proj-b" || h.m.project.projectName() != "Chores" {
		t.Fatalf("expected proj-b loaded, got %q", h.m.project.projectName())
	}
	items := h.m.project.taskItems()
	if len(items) != 1 || items[0].ID != "task-9" {
		t.Fatalf("expected proj-b tasks only, got %+v", items)
	}
}

func TestApp_DeleteProjectReturnsHome(t *testing.T) {
	t.Parallel()

	c := seededClient()
	h := newAppHarness(t, c, projectPath("proj-a"))

	h.p.keys(runeKey("D"))

	if h.m.home == nil || h.m.project != nil {
		t.Fatalf("expected home after deleting project")
	}
	if got := len(h.m.home.list.Items()); got != 0 {
		t.Fatalf("expected no projects listed, got %d", got)
	}
}

func TestApp_QuitUnlessTyping(t *testing.T) {
	t.Parallel()

	c := seededClient()
	h := newAppHarness(t, c, projectPath("proj-a"))

	h.p.keys(runeKey("a"))
	h.p.keys(runeKey("q"))
	if h.p.quit {
		t.Fatalf("q must type into the form while creating")
	}
	if v := h.m.project.taskForm.Value("title"); v != "q" {
		t.Fatalf("expected q typed, got %q", v)
	}

	h.p.keys(keyEsc)
	h.p.keys(runeKey("q"))
	if !h.p.quit {
		t.Fatalf("expected quit")
	}
}

func TestApp_UnknownRouteFallsBackHome(t *testing.T) {
	t.Parallel()

	c := seededClient()
	h := newAppHarness(t, c, "/nowhere")
	if h.m.home == nil {
		t.Fatalf("expected home for an unknown start route")
	}

	h.p.send(navigateMsg{path: "/bogus"})
	if h.m.home == nil {
		t.Fatalf("expected current view kept on a bad route")
	}
}

func TestApp_WindowSizeResizesView(t *testing.T) {
	t.Parallel()

	c := seededClient()
	h := newAppHarness(t, c, projectPath("proj-a"))

	h.p.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if h.m.project.width != 120 || h.m.project.height != 40 {
		t.Fatalf("expected view resized, got %dx%d", h.m.project.width, h.m.project.height)
	}
}
