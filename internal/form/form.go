// Package form is a small field-value store for text inputs with default values,
// required-field validation and submit wrapping.
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Values map[string]string

type FieldOptions struct {
	Placeholder string
	CharLimit   int
	Width       int
	Required    bool
}

// RequiredError reports a required field that was empty (after trimming) on submit.
type RequiredError struct {
	Field string
}

func (e RequiredError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

type field struct {
	name     string
	input    textinput.Model
	required bool
	err      error
}

type Form struct {
	defaults Values
	fields   []*field
	byName   map[string]*field
	focused  string
}

func New(defaults Values) *Form {
	d := Values{}
	for k, v := range defaults {
		d[k] = v
	}
	return &Form{defaults: d, byName: map[string]*field{}}
}

// Register adds a text field. Registering an existing name replaces its options.
func (f *Form) Register(name string, opts FieldOptions) *Form {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = opts.Placeholder
	if opts.CharLimit > 0 {
		ti.CharLimit = opts.CharLimit
	}
	if opts.Width > 0 {
		ti.Width = opts.Width
	}
	ti.SetValue(f.defaults[name])

	fd := &field{name: name, input: ti, required: opts.Required}
	if existing, ok := f.byName[name]; ok {
		*existing = *fd
		return f
	}
	f.fields = append(f.fields, fd)
	f.byName[name] = fd
	return f
}

func (f *Form) Value(name string) string {
	if fd, ok := f.byName[name]; ok {
		return fd.input.Value()
	}
	return ""
}

func (f *Form) SetValue(name, v string) {
	if fd, ok := f.byName[name]; ok {
		fd.input.SetValue(v)
		fd.err = nil
	}
}

func (f *Form) Values() Values {
	out := Values{}
	for _, fd := range f.fields {
		out[fd.name] = fd.input.Value()
	}
	return out
}

// Focus focuses name and blurs every other field.
func (f *Form) Focus(name string) tea.Cmd {
	var cmd tea.Cmd
	for _, fd := range f.fields {
		if fd.name == name {
			cmd = fd.input.Focus()
			continue
		}
		fd.input.Blur()
	}
	if _, ok := f.byName[name]; ok {
		f.focused = name
	}
	return cmd
}

func (f *Form) Blur() {
	for _, fd := range f.fields {
		fd.input.Blur()
	}
	f.focused = ""
}

func (f *Form) Focused() string { return f.focused }

// Update forwards msg to the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	fd, ok := f.byName[f.focused]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	fd.input, cmd = fd.input.Update(msg)
	if fd.err != nil && strings.TrimSpace(fd.input.Value()) != "" {
		fd.err = nil
	}
	return cmd
}

// Validate checks required fields and records per-field errors.
func (f *Form) Validate() error {
	var first error
	for _, fd := range f.fields {
		fd.err = nil
		if fd.required && strings.TrimSpace(fd.input.Value()) == "" {
			fd.err = RequiredError{Field: fd.name}
			if first == nil {
				first = fd.err
			}
		}
	}
	return first
}

func (f *Form) Err(name string) error {
	if fd, ok := f.byName[name]; ok {
		return fd.err
	}
	return nil
}

// HandleSubmit wraps fn so it only runs when the form validates. Values passed to fn
// are trimmed.
func (f *Form) HandleSubmit(fn func(Values) tea.Cmd) func() tea.Cmd {
	return func() tea.Cmd {
		if err := f.Validate(); err != nil {
			return nil
		}
		vals := f.Values()
		for k, v := range vals {
			vals[k] = strings.TrimSpace(v)
		}
		return fn(vals)
	}
}

// Reset puts every field back to its default value and clears validation errors.
func (f *Form) Reset() {
	for _, fd := range f.fields {
		fd.input.SetValue(f.defaults[fd.name])
		fd.err = nil
	}
}

func (f *Form) View(name string) string {
	if fd, ok := f.byName[name]; ok {
		return fd.input.View()
	}
	return ""
}
