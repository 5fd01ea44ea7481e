package tui

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestProjectView(t *testing.T, c *fakeClient, projectID string) (*projectModel, *pump) {
	t.Helper()
	m := newProjectModel(c, nil, navigate, time.Second)
	m.spinner.Spinner.FPS = time.Hour
	m.copy = func(string) error { return nil }
	p := &pump{t: t, update: m.Update}
	p.run(m.Init())
	p.run(m.setProjectID(projectID))
	return m, p
}

func seededClient() *fakeClient {
	c := newFakeClient()
	c.addProject("proj-a", "Groceries")
	c.addTask("proj-a", "task-1", "Milk", false)
	c.addTask("proj-a", "task-2", "Eggs", true)
	return c
}

func taskTitles(m *projectModel) []string {
	var out []string
	for _, t := range m.taskItems() {
		out = append(out, t.Title)
	}
	return out
}

func TestProjectView_MountFetchesProject(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, _ := newTestProjectView(t, c, "proj-a")

	if got := c.callsTo("GetProject"); len(got) != 1 || got[0] != "GetProject proj-a" {
		t.Fatalf("expected one fetch for proj-a, got %v", got)
	}
	if m.projectName() != "Groceries" {
		t.Fatalf("expected project name, got %q", m.projectName())
	}
	if got := strings.Join(taskTitles(m), ","); got != "Milk,Eggs" {
		t.Fatalf("expected tasks in creation order, got %q", got)
	}
	if len(m.tasks.Items()) != 2 {
		t.Fatalf("expected list synced with 2 items, got %d", len(m.tasks.Items()))
	}
	if m.loading() {
		t.Fatalf("expected not loading after fetch settled")
	}
	view := m.View()
	if !strings.Contains(view, "[ ] Milk") || !strings.Contains(view, "[x] Eggs") {
		t.Fatalf("expected rendered checkboxes, got:\n%s", view)
	}
}

func TestProjectView_CreateTaskFlow(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, p := newTestProjectView(t, c, "proj-a")

	p.keys(runeKey("a"))
	if !m.creation.editing() {
		t.Fatalf("expected editing after add key")
	}
	if m.taskForm.Focused() != "title" {
		t.Fatalf("expected title input focused, got %q", m.taskForm.Focused())
	}

	p.keys(typeText("Bread rolls")...)
	p.keys(keyEnter)

	if got := c.callsTo("CreateTask"); len(got) != 1 || got[0] != "CreateTask proj-a Bread rolls" {
		t.Fatalf("unexpected create calls: %v", got)
	}
	if m.creation.editing() {
		t.Fatalf("expected creation closed after success")
	}
	if v := m.taskForm.Value("title"); v != "" {
		t.Fatalf("expected form reset, got %q", v)
	}
	if got := len(c.callsTo("GetProject")); got != 2 {
		t.Fatalf("expected refetch after create, got %d fetches", got)
	}
	if got := strings.Join(taskTitles(m), ","); got != "Milk,Eggs,Bread rolls" {
		t.Fatalf("expected new task last, got %q", got)
	}
}

func TestProjectView_FocusesTitleOncePerOpen(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, p := newTestProjectView(t, c, "proj-a")

	p.run(m.startCreating())
	p.run(m.startCreating())
	p.run(m.startCreating())
	if m.focusCount != 1 {
		t.Fatalf("expected exactly one focus while editing, got %d", m.focusCount)
	}

	p.keys(keyEsc)
	p.keys(runeKey("a"))
	if m.focusCount != 2 {
		t.Fatalf("expected a second focus after reopening, got %d", m.focusCount)
	}
}

func TestProjectView_BlankSubmitDoesNotMutate(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "   "} {
		c := seededClient()
		m, p := newTestProjectView(t, c, "proj-a")

		p.keys(runeKey("a"))
		p.keys(typeText(title)...)
		p.keys(keyEnter)

		if got := c.callsTo("CreateTask"); len(got) != 0 {
			t.Fatalf("title %q: expected no create call, got %v", title, got)
		}
		if !m.creation.editing() {
			t.Fatalf("title %q: expected to stay editing", title)
		}
		if m.taskForm.Err("title") == nil {
			t.Fatalf("title %q: expected a required error on the field", title)
		}
	}
}

func TestProjectView_CancelDoesNotMutate(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, p := newTestProjectView(t, c, "proj-a")

	p.keys(runeKey("a"))
	p.keys(typeText("Half typed")...)
	p.keys(keyEsc)

	if m.creation.editing() {
		t.Fatalf("expected idle after cancel")
	}
	if got := c.callsTo("CreateTask"); len(got) != 0 {
		t.Fatalf("expected no create call, got %v", got)
	}
	if v := m.taskForm.Value("title"); v != "" {
		t.Fatalf("expected form reset on cancel, got %q", v)
	}
	if m.taskForm.Focused() != "" {
		t.Fatalf("expected input blurred on cancel")
	}
}

func TestProjectView_CreateFailureKeepsEditing(t *testing.T) {
	t.Parallel()

	c := seededClient()
	c.failOn("CreateTask", errors.New("boom"))
	m, p := newTestProjectView(t, c, "proj-a")

	p.keys(runeKey("a"))
	p.keys(typeText("Cheese")...)
	p.keys(keyEnter)

	if !m.creation.editing() {
		t.Fatalf("expected to remain editing after a failed create")
	}
	if v := m.taskForm.Value("title"); v != "Cheese" {
		t.Fatalf("expected typed title kept, got %q", v)
	}
	if got := len(c.callsTo("GetProject")); got != 1 {
		t.Fatalf("expected no refetch after failure, got %d fetches", got)
	}
	if m.createTask.Err() == nil || m.createTask.Pending() {
		t.Fatalf("expected settled mutation with error")
	}
	if strings.Contains(m.View(), "boom") {
		t.Fatalf("mutation errors must not be rendered")
	}
}

func TestProjectView_CheckAndUncheckSendTargetState(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, p := newTestProjectView(t, c, "proj-a")

	// task-1 is not done; task-2 is done. Both keys send a fixed target state.
	p.keys(runeKey("x"))
	p.keys(runeKey("x"))
	p.keys(keyDown)
	p.keys(runeKey("x"))
	p.keys(runeKey("u"))

	want := []string{
		"UpdateTask task-1 true",
		"UpdateTask task-1 true",
		"UpdateTask task-2 true",
		"UpdateTask task-2 false",
	}
	got := c.callsTo("UpdateTask")
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected update calls:\n got %v\nwant %v", got, want)
	}
	if fetches := len(c.callsTo("GetProject")); fetches != 1+len(want) {
		t.Fatalf("expected a refetch after each update, got %d fetches", fetches)
	}
	if tk, _ := c.task("task-1"); !tk.IsDone {
		t.Fatalf("expected task-1 done")
	}
	items := m.taskItems()
	if !items[0].IsDone || items[1].IsDone {
		t.Fatalf("expected view to reflect refetched state, got %+v", items)
	}
}

func TestProjectView_DeleteTaskRefetches(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, p := newTestProjectView(t, c, "proj-a")

	p.keys(runeKey("d"))

	if got := c.callsTo("DeleteTask"); len(got) != 1 || got[0] != "DeleteTask task-1" {
		t.Fatalf("unexpected delete calls: %v", got)
	}
	if got := strings.Join(taskTitles(m), ","); got != "Eggs" {
		t.Fatalf("expected remaining task after refetch, got %q", got)
	}
}

func TestProjectView_DeleteProjectNavigatesHome(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, p := newTestProjectView(t, c, "proj-a")

	p.keys(runeKey("D"))

	if got := c.callsTo("DeleteProject"); len(got) != 1 || got[0] != "DeleteProject proj-a" {
		t.Fatalf("unexpected delete project calls: %v", got)
	}
	if len(p.navs) != 1 || p.navs[0] != homePath {
		t.Fatalf("expected navigation home, got %v", p.navs)
	}
	// The post-delete refetch still runs and fails with not found.
	if got := len(c.callsTo("GetProject")); got != 2 {
		t.Fatalf("expected refetch after delete project, got %d fetches", got)
	}
	if m.project.Err() == nil {
		t.Fatalf("expected refetch of deleted project to fail")
	}
	if _, ok := m.project.Value(); !ok {
		t.Fatalf("expected last good value retained after failed refetch")
	}
}

func TestProjectView_DeleteProjectFailureStays(t *testing.T) {
	t.Parallel()

	c := seededClient()
	c.failOn("DeleteProject", errors.New("locked"))
	_, p := newTestProjectView(t, c, "proj-a")

	p.keys(runeKey("D"))

	if len(p.navs) != 0 {
		t.Fatalf("expected no navigation on failure, got %v", p.navs)
	}
	if got := len(c.callsTo("GetProject")); got != 1 {
		t.Fatalf("expected no refetch on failure, got %d fetches", got)
	}
}

func TestProjectView_CopyTaskID(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, p := newTestProjectView(t, c, "proj-a")
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	p.keys(runeKey("y"))
	if copied != "task-1" {
		t.Fatalf("expected task id copied, got %q", copied)
	}
	if !strings.Contains(m.View(), "copied task-1") {
		t.Fatalf("expected status line, got:\n%s", m.View())
	}

	p.send(flashDoneMsg{seq: m.flashSeq})
	if m.statusText != "" {
		t.Fatalf("expected status cleared after flash, got %q", m.statusText)
	}
}

func TestProjectView_RefetchKey(t *testing.T) {
	t.Parallel()

	c := seededClient()
	m, p := newTestProjectView(t, c, "proj-a")

	c.addTask("proj-a", "task-3", "Butter", false)
	p.keys(runeKey("r"))

	if got := len(c.callsTo("GetProject")); got != 2 {
		t.Fatalf("expected manual refetch, got %d fetches", got)
	}
	if got := len(m.taskItems()); got != 3 {
		t.Fatalf("expected 3 tasks after refetch, got %d", got)
	}
}

func TestProjectView_EscNavigatesHome(t *testing.T) {
	t.Parallel()

	c := seededClient()
	_, p := newTestProjectView(t, c, "proj-a")

	p.keys(keyEsc)
	if len(p.navs) != 1 || p.navs[0] != homePath {
		t.Fatalf("expected navigation home, got %v", p.navs)
	}
}
