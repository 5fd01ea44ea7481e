package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskpad/internal/api"
	"taskpad/internal/form"
	"taskpad/internal/model"
	"taskpad/internal/query"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type updateTaskInput struct {
	ID   string
	Data model.UpdateTaskRequest
}

// projectModel is the view of a single project and its tasks.
//
// The task list shown is always the Items of the latest successful fetch for the
// current project id. Mutations never patch it; each success refetches instead.
type projectModel struct {
	log      *slog.Logger
	navigate func(path string) tea.Cmd
	copy     func(string) error

	project *query.Resource[string, model.ProjectView]

	createTask    *query.Mutation[model.CreateTaskRequest, model.Task]
	deleteTask    *query.Mutation[string, struct{}]
	updateTask    *query.Mutation[updateTaskInput, struct{}]
	deleteProject *query.Mutation[string, struct{}]

	creation   creationMachine
	taskForm   *form.Form
	submitTask func() tea.Cmd
	// focusCount counts focus side effects on the title input.
	focusCount int

	tasks   list.Model
	spinner spinner.Model
	width   int
	height  int

	statusText string
	flashSeq   int
}

type flashDoneMsg struct{ seq int }

const flashDuration = 2 * time.Second

func newProjectModel(client api.Client, log *slog.Logger, nav func(string) tea.Cmd, timeout time.Duration) *projectModel {
	if log == nil {
		log = discardLogger()
	}
	m := &projectModel{
		log:      log,
		navigate: nav,
		copy:     copyToClipboard,
		tasks:    newList(nil),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleMuted())),
		width:    80,
		height:   24,
	}
	m.resize(m.width, m.height)

	m.project = query.NewResource(func(ctx context.Context, id string) (model.ProjectView, error) {
		return client.GetProject(ctx, id)
	}).WithTimeout(timeout)

	m.taskForm = form.New(form.Values{"title": ""}).
		Register("title", form.FieldOptions{Placeholder: "Task title", CharLimit: 200, Required: true})
	m.submitTask = m.taskForm.HandleSubmit(func(v form.Values) tea.Cmd {
		return m.createTask.Mutate(model.CreateTaskRequest{Title: v["title"], ProjectID: m.projectID()})
	})

	m.creation = creationMachine{
		onEnter: func() tea.Cmd {
			m.taskForm.Reset()
			m.focusCount++
			return m.taskForm.Focus("title")
		},
		onExit: m.taskForm.Blur,
	}

	m.createTask = query.NewMutation("create-task", client.CreateTask).WithTimeout(timeout).
		OnSuccess(func(model.CreateTaskRequest, model.Task) tea.Cmd {
			m.creation.close()
			cmd := m.project.Refetch()
			m.taskForm.Reset()
			return cmd
		})

	m.deleteTask = query.NewAction("delete-task", client.DeleteTask).WithTimeout(timeout).
		OnSuccess(func(string, struct{}) tea.Cmd { return m.project.Refetch() })

	m.updateTask = query.NewAction("update-task", func(ctx context.Context, in updateTaskInput) error {
		return client.UpdateTask(ctx, in.ID, in.Data)
	}).WithTimeout(timeout).
		OnSuccess(func(updateTaskInput, struct{}) tea.Cmd { return m.project.Refetch() })

	// The refetch of the just-deleted project is kept; its result is dropped once the
	// view unmounts on navigation.
	m.deleteProject = query.NewAction("delete-project", client.DeleteProject).WithTimeout(timeout).
		OnSuccess(func(string, struct{}) tea.Cmd {
			return tea.Batch(m.project.Refetch(), m.navigate(homePath))
		})

	m.createTask.OnError(func(in model.CreateTaskRequest, err error) {
		m.log.Warn("mutation failed", "mutation", "create-task", "project", in.ProjectID, "error", err)
	})
	m.deleteTask.OnError(func(id string, err error) {
		m.log.Warn("mutation failed", "mutation", "delete-task", "task", id, "error", err)
	})
	m.updateTask.OnError(func(in updateTaskInput, err error) {
		m.log.Warn("mutation failed", "mutation", "update-task", "task", in.ID, "isDone", in.Data.IsDone, "error", err)
	})
	m.deleteProject.OnError(func(id string, err error) {
		m.log.Warn("mutation failed", "mutation", "delete-project", "project", id, "error", err)
	})

	return m
}

func (m *projectModel) Init() tea.Cmd { return m.spinner.Tick }

// setProjectID points the view at id; the project is fetched when id changes.
func (m *projectModel) setProjectID(id string) tea.Cmd {
	cmd := m.project.SetKey(id)
	m.syncTasks()
	return cmd
}

func (m *projectModel) projectID() string {
	id, _ := m.project.Key()
	return id
}

func (m *projectModel) projectName() string {
	pv, ok := m.project.Value()
	if !ok {
		return ""
	}
	return pv.Info.Name
}

func (m *projectModel) taskItems() []model.Task {
	pv, ok := m.project.Value()
	if !ok {
		return nil
	}
	return pv.Items
}

func (m *projectModel) loading() bool { return m.project.Loading() }

// capturesInput reports whether keys belong to the inline form.
func (m *projectModel) capturesInput() bool { return m.creation.editing() }

func (m *projectModel) syncTasks() {
	xs := m.taskItems()
	items := make([]list.Item, 0, len(xs))
	for _, t := range xs {
		items = append(items, taskItem{task: t})
	}
	m.tasks.SetItems(items)
}

func (m *projectModel) selectedTaskID() (string, bool) {
	it, ok := m.tasks.SelectedItem().(taskItem)
	if !ok {
		return "", false
	}
	return it.task.ID, true
}

func (m *projectModel) startCreating() tea.Cmd { return m.creation.open() }

func (m *projectModel) cancelCreating() {
	m.creation.close()
	m.taskForm.Reset()
}

func (m *projectModel) check(id string) tea.Cmd {
	return m.updateTask.Mutate(updateTaskInput{ID: id, Data: model.UpdateTaskRequest{IsDone: true}})
}

func (m *projectModel) uncheck(id string) tea.Cmd {
	return m.updateTask.Mutate(updateTaskInput{ID: id, Data: model.UpdateTaskRequest{IsDone: false}})
}

func (m *projectModel) remove(id string) tea.Cmd { return m.deleteTask.Mutate(id) }

func (m *projectModel) removeProject() tea.Cmd { return m.deleteProject.Mutate(m.projectID()) }

func (m *projectModel) resize(w, h int) {
	m.width = w
	m.height = h
	listH := h - 10
	if listH < 3 {
		listH = 3
	}
	m.tasks.SetSize(contentWidth(w), listH)
}

func (m *projectModel) Update(msg tea.Msg) tea.Cmd {
	if m.project.Handle(msg) {
		if err := m.project.Err(); err != nil {
			m.log.Warn("fetch failed", "resource", "project", "project", m.projectID(), "error", err)
		}
		m.syncTasks()
		return nil
	}
	if cmd, ok := m.createTask.Handle(msg); ok {
		return cmd
	}
	if cmd, ok := m.deleteTask.Handle(msg); ok {
		return cmd
	}
	if cmd, ok := m.updateTask.Handle(msg); ok {
		return cmd
	}
	if cmd, ok := m.deleteProject.Handle(msg); ok {
		return cmd
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.statusText = ""
		}
		return nil
	case tea.KeyMsg:
		if m.creation.editing() {
			return m.updateCreating(msg)
		}
		return m.updateBrowsing(msg)
	}
	return nil
}

func (m *projectModel) updateCreating(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.submitTask()
	case "esc":
		m.cancelCreating()
		return nil
	}
	return m.taskForm.Update(msg)
}

func (m *projectModel) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	m.statusText = ""
	switch msg.String() {
	case "a", "+":
		return m.startCreating()
	case "x":
		if id, ok := m.selectedTaskID(); ok {
			return m.check(id)
		}
		return nil
	case "u":
		if id, ok := m.selectedTaskID(); ok {
			return m.uncheck(id)
		}
		return nil
	case "d", "delete":
		if id, ok := m.selectedTaskID(); ok {
			return m.remove(id)
		}
		return nil
	case "D":
		return m.removeProject()
	case "r":
		return m.project.Refetch()
	case "y":
		if id, ok := m.selectedTaskID(); ok {
			if err := m.copy(id); err != nil {
				m.log.Warn("clipboard", "error", err)
				m.statusText = "copy failed"
			} else {
				m.statusText = "copied " + id
			}
			return m.flash()
		}
		return nil
	case "esc", "backspace":
		return m.navigate(homePath)
	}

	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	return cmd
}

func (m *projectModel) flash() tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m *projectModel) View() string {
	w := contentWidth(m.width)
	var b strings.Builder

	b.WriteString(headerRow("Project", "D delete", w))
	b.WriteString("\n")
	name := m.projectName()
	if name == "" {
		name = m.projectID()
	}
	b.WriteString(styleHeading().Render(fitText(name, w)))
	b.WriteString("\n")
	if pv, ok := m.project.Value(); ok && strings.TrimSpace(pv.Info.Description) != "" {
		b.WriteString(renderMarkdown(pv.Info.Description, w))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(headerRow("Tasks", "a add", w))
	b.WriteString("\n")
	if m.creation.editing() {
		b.WriteString(styleInput().Render(m.taskForm.View("title")))
		b.WriteString("  ")
		b.WriteString(styleMuted().Render("enter save · esc cancel"))
		b.WriteString("\n")
	}

	switch {
	case len(m.tasks.Items()) > 0:
		b.WriteString(m.tasks.View())
		if m.loading() {
			b.WriteString("\n" + m.spinner.View())
		}
	case m.loading():
		b.WriteString(m.spinner.View() + styleMuted().Render(" Loading…"))
	default:
		b.WriteString(styleMuted().Render("No tasks."))
	}
	b.WriteString("\n\n")

	footer := "x check · u uncheck · d delete · y copy id · r reload · esc back · q quit"
	if m.statusText != "" {
		footer = m.statusText
	}
	b.WriteString(styleMuted().Render(fitText(footer, w)))
	return b.String()
}

func headerRow(title, hint string, w int) string {
	left := styleTitle().Render(title)
	right := styleMuted().Render(hint)
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func fitText(s string, w int) string {
	return strings.TrimRight(fitLine(s, w), " ")
}

func contentWidth(w int) int {
	const maxContentW = 72
	if w <= 0 {
		return maxContentW
	}
	if w > maxContentW+4 {
		return maxContentW
	}
	if w-4 < 10 {
		return 10
	}
	return w - 4
}

func (m *projectModel) String() string {
	return fmt.Sprintf("project(%s)", m.projectID())
}
