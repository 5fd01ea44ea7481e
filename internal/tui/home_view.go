package tui

import (
	"context"
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
)

// homeModel lists projects and creates new ones.
type homeModel struct {
	log      *slog.Logger
	navigate func(path string) tea.Cmd

	projects      *query.Resource[struct{}, []model.Project]
	createProject *query.Mutation[model.CreateProjectRequest, model.Project]

	creation      creationMachine
	projectForm   *form.Form
	submitProject func() tea.Cmd

	list    list.Model
	spinner spinner.Model
	width   int
	height  int
}

func newHomeModel(client api.Client, log *slog.Logger, nav func(string) tea.Cmd, timeout time.Duration) *homeModel {
	if log == nil {
		log = discardLogger()
	}
	m := &homeModel{
		log:      log,
		navigate: nav,
		list:     newList(nil),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleMuted())),
	}
	m.resize(80, 24)

	m.projects = query.NewResource(func(ctx context.Context, _ struct{}) ([]model.Project, error) {
		return client.ListProjects(ctx)
	}).WithTimeout(timeout)

	m.projectForm = form.New(form.Values{"name": "", "description": ""}).
		Register("name", form.FieldOptions{Placeholder: "Project name", CharLimit: 120, Required: true}).
		Register("description", form.FieldOptions{Placeholder: "Description (markdown, optional)", CharLimit: 500})
	m.submitProject = m.projectForm.HandleSubmit(func(v form.Values) tea.Cmd {
		return m.createProject.Mutate(model.CreateProjectRequest{Name: v["name"], Description: v["description"]})
	})

	m.creation = creationMachine{
		onEnter: func() tea.Cmd {
			m.projectForm.Reset()
			return m.projectForm.Focus("name")
		},
		onExit: m.projectForm.Blur,
	}

	m.createProject = query.NewMutation("create-project", client.CreateProject).WithTimeout(timeout).
		OnSuccess(func(model.CreateProjectRequest, model.Project) tea.Cmd {
			m.creation.close()
			cmd := m.projects.Refetch()
			m.projectForm.Reset()
			return cmd
		}).
		OnError(func(in model.CreateProjectRequest, err error) {
			m.log.Warn("mutation failed", "mutation", "create-project", "name", in.Name, "error", err)
		})

	return m
}

func (m *homeModel) Init() tea.Cmd {
	return tea.Batch(m.projects.SetKey(struct{}{}), m.spinner.Tick)
}

func (m *homeModel) capturesInput() bool { return m.creation.editing() }

func (m *homeModel) resize(w, h int) {
	m.width = w
	m.height = h
	listH := h - 8
	if listH < 3 {
		listH = 3
	}
	m.list.SetSize(contentWidth(w), listH)
}

func (m *homeModel) syncProjects() {
	xs, _ := m.projects.Value()
	items := make([]list.Item, 0, len(xs))
	for _, p := range xs {
		items = append(items, projectItem{project: p})
	}
	m.list.SetItems(items)
}

func (m *homeModel) Update(msg tea.Msg) tea.Cmd {
	if m.projects.Handle(msg) {
		if err := m.projects.Err(); err != nil {
			m.log.Warn("fetch failed", "resource", "projects", "error", err)
		}
		m.syncProjects()
		return nil
	}
	if cmd, ok := m.createProject.Handle(msg); ok {
		return cmd
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if m.creation.editing() {
			return m.updateCreating(msg)
		}
		switch msg.String() {
		case "n", "a", "+":
			return m.creation.open()
		case "r":
			return m.projects.Refetch()
		case "enter":
			if it, ok := m.list.SelectedItem().(projectItem); ok {
				return m.navigate(projectPath(it.project.ID))
			}
			return nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd
	}
	return nil
}

func (m *homeModel) updateCreating(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.submitProject()
	case "esc":
		m.creation.close()
		m.projectForm.Reset()
		return nil
	case "tab", "shift+tab":
		if m.projectForm.Focused() == "name" {
			return m.projectForm.Focus("description")
		}
		return m.projectForm.Focus("name")
	}
	return m.projectForm.Update(msg)
}

func (m *homeModel) View() string {
	w := contentWidth(m.width)
	var b strings.Builder

	b.WriteString(headerRow("Projects", "n new", w))
	b.WriteString("\n\n")
	if m.creation.editing() {
		b.WriteString(styleInput().Render(m.projectForm.View("name")))
		b.WriteString("\n")
		b.WriteString(styleInput().Render(m.projectForm.View("description")))
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("enter save · tab next field · esc cancel"))
		b.WriteString("\n\n")
	}

	switch {
	case len(m.list.Items()) > 0:
		b.WriteString(m.list.View())
	case m.projects.Loading():
		b.WriteString(m.spinner.View() + styleMuted().Render(" Loading…"))
	default:
		b.WriteString(styleMuted().Render("No projects yet."))
	}
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render(fitText("enter open · n new · r reload · q quit", w)))
	return b.String()
}
