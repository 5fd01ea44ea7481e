package query

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Mutation wraps one side-effecting remote call.
//
// Mutate starts a single attempt (no retry). Pending is true while a call is in flight.
// When the call settles, Handle clears Pending and, on success only, runs the
// continuations registered with OnSuccess in registration order. Failures are kept in
// Err and reported to OnError observers; they never reach the success continuations.
//
// Overlapping calls on one Mutation are allowed and not deduplicated. Pending is a
// single flag, so the first call to settle clears it.
type Mutation[In, Out any] struct {
	name    string
	call    func(ctx context.Context, in In) (Out, error)
	timeout time.Duration

	pending bool
	err     error
	calls   int

	onSuccess []func(in In, out Out) tea.Cmd
	onError   []func(in In, err error)
}

type mutationMsg[In, Out any] struct {
	owner *Mutation[In, Out]
	in    In
	res   Result[Out]
}

func NewMutation[In, Out any](name string, call func(ctx context.Context, in In) (Out, error)) *Mutation[In, Out] {
	return &Mutation[In, Out]{name: name, call: call, timeout: DefaultTimeout}
}

// NewAction is NewMutation for calls that return nothing but an error.
func NewAction[In any](name string, call func(ctx context.Context, in In) error) *Mutation[In, struct{}] {
	return NewMutation(name, func(ctx context.Context, in In) (struct{}, error) {
		return struct{}{}, call(ctx, in)
	})
}

func (m *Mutation[In, Out]) WithTimeout(d time.Duration) *Mutation[In, Out] {
	if d > 0 {
		m.timeout = d
	}
	return m
}

// OnSuccess registers a continuation that runs after each successful call.
func (m *Mutation[In, Out]) OnSuccess(fn func(in In, out Out) tea.Cmd) *Mutation[In, Out] {
	m.onSuccess = append(m.onSuccess, fn)
	return m
}

// OnError registers an observer for failed calls.
func (m *Mutation[In, Out]) OnError(fn func(in In, err error)) *Mutation[In, Out] {
	m.onError = append(m.onError, fn)
	return m
}

func (m *Mutation[In, Out]) Mutate(in In) tea.Cmd {
	m.pending = false
	m.err = nil
	m.pending = true
	m.calls++

	call := m.call
	timeout := m.timeout
	owner := m

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		out, err := call(ctx, in)
		return mutationMsg[In, Out]{owner: owner, in: in, res: Result[Out]{Value: out, Err: err}}
	}
}

// Handle settles msg if it is a result for this mutation. It returns the batched
// commands of the success continuations and whether msg belonged to m.
func (m *Mutation[In, Out]) Handle(msg tea.Msg) (tea.Cmd, bool) {
	r, ok := msg.(mutationMsg[In, Out])
	if !ok || r.owner != m {
		return nil, false
	}
	m.pending = false

	if !r.res.OK() {
		m.err = r.res.Err
		for _, fn := range m.onError {
			fn(r.in, r.res.Err)
		}
		return nil, true
	}

	m.err = nil
	cmds := make([]tea.Cmd, 0, len(m.onSuccess))
	for _, fn := range m.onSuccess {
		cmds = append(cmds, fn(r.in, r.res.Value))
	}
	return tea.Batch(cmds...), true
}

func (m *Mutation[In, Out]) Name() string { return m.name }

func (m *Mutation[In, Out]) Pending() bool { return m.pending }

// Err returns the error of the last settled call, or nil.
func (m *Mutation[In, Out]) Err() error { return m.err }

// Calls counts invocations of Mutate.
func (m *Mutation[In, Out]) Calls() int { return m.calls }
