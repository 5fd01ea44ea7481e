package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"taskpad/internal/api"
	"taskpad/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeClient is an in-memory api.Client that records every call.
type fakeClient struct {
	mu       sync.Mutex
	projects []model.Project
	tasks    []model.Task
	calls    []string
	fail     map[string]error
	next     int
}

var _ api.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{fail: map[string]error{}}
}

func (c *fakeClient) addProject(id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = append(c.projects, model.Project{ID: id, Name: name, CreatedAt: time.Now().UTC()})
}

func (c *fakeClient) addTask(projectID, id, title string, done bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append(c.tasks, model.Task{ID: id, ProjectID: projectID, Title: title, IsDone: done})
}

func (c *fakeClient) failOn(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail[op] = err
}

func (c *fakeClient) record(op string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	parts := []string{op}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	c.calls = append(c.calls, strings.Join(parts, " "))
	return c.fail[op]
}

// callsTo returns the recorded calls for op, each as "op arg...".
func (c *fakeClient) callsTo(op string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, s := range c.calls {
		if s == op || strings.HasPrefix(s, op+" ") {
			out = append(out, s)
		}
	}
	return out
}

func (c *fakeClient) task(id string) (model.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (c *fakeClient) ListProjects(context.Context) ([]model.Project, error) {
	if err := c.record("ListProjects"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Project(nil), c.projects...), nil
}

func (c *fakeClient) CreateProject(_ context.Context, req model.CreateProjectRequest) (model.Project, error) {
	if err := c.record("CreateProject", req.Name); err != nil {
		return model.Project{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	p := model.Project{ID: fmt.Sprintf("proj-new%d", c.next), Name: req.Name, Description: req.Description}
	c.projects = append(c.projects, p)
	return p, nil
}

func (c *fakeClient) GetProject(_ context.Context, id string) (model.ProjectView, error) {
	if err := c.record("GetProject", id); err != nil {
		return model.ProjectView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.projects {
		if p.ID != id {
			continue
		}
		pv := model.ProjectView{Info: p, Items: []model.Task{}}
		for _, t := range c.tasks {
			if t.ProjectID == id {
				pv.Items = append(pv.Items, t)
			}
		}
		return pv, nil
	}
	return model.ProjectView{}, api.NotFoundError{Kind: "project", ID: id}
}

func (c *fakeClient) DeleteProject(_ context.Context, id string) error {
	if err := c.record("DeleteProject", id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.projects {
		if p.ID == id {
			c.projects = append(c.projects[:i], c.projects[i+1:]...)
			kept := c.tasks[:0]
			for _, t := range c.tasks {
				if t.ProjectID != id {
					kept = append(kept, t)
				}
			}
			c.tasks = kept
			return nil
		}
	}
	return api.NotFoundError{Kind: "project", ID: id}
}

func (c *fakeClient) CreateTask(_ context.Context, req model.CreateTaskRequest) (model.Task, error) {
	if err := c.record("CreateTask", req.ProjectID, req.Title); err != nil {
		return model.Task{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	t := model.Task{ID: fmt.Sprintf("task-new%d", c.next), ProjectID: req.ProjectID, Title: req.Title}
	c.tasks = append(c.tasks, t)
	return t, nil
}

func (c *fakeClient) UpdateTask(_ context.Context, id string, req model.UpdateTaskRequest) error {
	if err := c.record("UpdateTask", id, req.IsDone); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].IsDone = req.IsDone
			return nil
		}
	}
	return api.NotFoundError{Kind: "task", ID: id}
}

func (c *fakeClient) DeleteTask(_ context.Context, id string) error {
	if err := c.record("DeleteTask", id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return nil
		}
	}
	return api.NotFoundError{Kind: "task", ID: id}
}

// cmdWait bounds how long pump waits on a single command. Timer-driven commands
// (cursor blink, flash expiry, spinner frames) block far longer and are dropped.
const cmdWait = 100 * time.Millisecond

// pump runs commands until the queue drains, feeding every message back through update.
// Navigation messages are recorded and, when followNav is set, delivered as well.
type pump struct {
	t         *testing.T
	update    func(tea.Msg) tea.Cmd
	followNav bool
	navs      []string
	quit      bool
}

func (p *pump) run(cmd tea.Cmd) {
	p.t.Helper()
	queue := []tea.Cmd{cmd}
	for rounds := 0; len(queue) > 0; rounds++ {
		if rounds > 500 {
			p.t.Fatalf("pump did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok || msg == nil {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			p.quit = true
		case navigateMsg:
			p.navs = append(p.navs, msg.path)
			if p.followNav {
				queue = append(queue, p.update(msg))
			}
		default:
			queue = append(queue, p.update(msg))
		}
	}
}

// send delivers msg and drains the resulting commands.
func (p *pump) send(msg tea.Msg) {
	p.t.Helper()
	p.run(p.update(msg))
}

func (p *pump) keys(keys ...tea.KeyMsg) {
	p.t.Helper()
	for _, k := range keys {
		p.send(k)
	}
}

func runCmd(c tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdWait):
		return nil, false
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(s string) []tea.KeyMsg {
	out := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			out = append(out, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		out = append(out, runeKey(string(r)))
	}
	return out
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)
