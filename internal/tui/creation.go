package tui

import tea "github.com/charmbracelet/bubbletea"

type creationPhase int

const (
	creationIdle creationPhase = iota
	creationEditing
)

// creationMachine tracks the "creating" mode of a view's inline form.
//
// onEnter runs once per Idle -> Editing transition (never while already Editing) and
// returns the command that focuses the input. onExit runs once per Editing -> Idle.
type creationMachine struct {
	phase   creationPhase
	onEnter func() tea.Cmd
	onExit  func()
}

func (c *creationMachine) open() tea.Cmd {
	if c.phase == creationEditing {
		return nil
	}
	c.phase = creationEditing
	if c.onEnter != nil {
		return c.onEnter()
	}
	return nil
}

func (c *creationMachine) close() {
	if c.phase == creationIdle {
		return
	}
	c.phase = creationIdle
	if c.onExit != nil {
		c.onExit()
	}
}

func (c *creationMachine) editing() bool { return c.phase == creationEditing }
