package tui

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type taskItem struct {
	task model.Task
}

func (t taskItem) FilterValue() string { return t.task.Title }

func (t taskItem) Title() string {
	box := "[ ]"
	if t.task.IsDone {
		box = "[x]"
	}
	return box + " " + t.task.Title
}

type projectItem struct {
	project model.Project
}

func (p projectItem) FilterValue() string { return p.project.Name }

func (p projectItem) Title() string { return p.project.Name }

// rowDelegate renders one line per item, padded or cut to the list width.
type rowDelegate struct {
	normal   lipgloss.Style
	done     lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		normal: lipgloss.NewStyle(),
		done:   faintIfDark(lipgloss.NewStyle().Foreground(colorDone)),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if t, ok := item.(taskItem); ok && t.task.IsDone {
		style = d.done
	}
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}
	fmt.Fprint(w, style.Render(fitLine(txt, contentW)))
}

// fitLine pads or cuts s to exactly w terminal cells.
func fitLine(s string, w int) string {
	lineW := xansi.StringWidth(s)
	switch {
	case lineW < w:
		return s + strings.Repeat(" ", w-lineW)
	case lineW > w:
		tail := "…"
		if w <= 1 {
			tail = ""
		}
		out := xansi.Truncate(s, w, tail)
		// Wide runes can leave the cut one cell short.
		if outW := xansi.StringWidth(out); outW < w {
			out += strings.Repeat(" ", w-outW)
		}
		return out
	default:
		return s
	}
}

func newList(items []list.Item) list.Model {
	l := list.New(items, newRowDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetShowPagination(true)
	return l
}
