// Package query provides the fetch and mutation primitives the views are built on.
//
// Both primitives are driven by the bubbletea event loop: starting work returns a
// tea.Cmd that runs the remote call off the loop, and the result comes back as a
// message that must be passed to Handle from the owning model's Update. State is
// only ever touched from Update, so no locking is needed.
package query

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout bounds a single fetch or mutation call.
const DefaultTimeout = 15 * time.Second

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Fetcher loads the value for key.
type Fetcher[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Resource holds the latest successfully fetched value for the current key.
//
// Changing the key discards the previous value and starts a fetch. Refetch re-runs the
// fetch for the current key. While a fetch is in flight the last good value for the key
// stays readable and Loading reports true. Only the most recently started fetch may
// apply; older results are dropped when they arrive.
type Resource[K comparable, V any] struct {
	fetch   Fetcher[K, V]
	timeout time.Duration

	key    K
	hasKey bool

	value    V
	hasValue bool
	loading  bool
	err      error

	seq     int
	applied int
}

type resourceMsg[K comparable, V any] struct {
	owner *Resource[K, V]
	seq   int
	key   K
	res   Result[V]
}

func NewResource[K comparable, V any](fetch Fetcher[K, V]) *Resource[K, V] {
	return &Resource[K, V]{fetch: fetch, timeout: DefaultTimeout}
}

// WithTimeout overrides the per-fetch timeout.
func (r *Resource[K, V]) WithTimeout(d time.Duration) *Resource[K, V] {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// SetKey switches the resource to key. It is a no-op when key is already current.
func (r *Resource[K, V]) SetKey(key K) tea.Cmd {
	if r.hasKey && r.key == key {
		return nil
	}
	var zero V
	r.key = key
	r.hasKey = true
	r.value = zero
	r.hasValue = false
	r.err = nil
	return r.start()
}

// Refetch re-runs the fetch for the current key. The result replaces the stored value.
func (r *Resource[K, V]) Refetch() tea.Cmd {
	if !r.hasKey {
		return nil
	}
	return r.start()
}

func (r *Resource[K, V]) start() tea.Cmd {
	r.seq++
	r.loading = true

	seq := r.seq
	key := r.key
	fetch := r.fetch
	timeout := r.timeout
	owner := r

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		v, err := fetch(ctx, key)
		return resourceMsg[K, V]{owner: owner, seq: seq, key: key, res: Result[V]{Value: v, Err: err}}
	}
}

// Handle applies msg if it is a fetch result for this resource. It reports whether msg
// belonged to r, including results that were dropped as stale.
func (r *Resource[K, V]) Handle(msg tea.Msg) bool {
	m, ok := msg.(resourceMsg[K, V])
	if !ok || m.owner != r {
		return false
	}
	if m.seq != r.seq || !r.hasKey || m.key != r.key {
		return true
	}

	r.loading = false
	if m.res.Err != nil {
		r.err = m.res.Err
		return true
	}
	r.value = m.res.Value
	r.hasValue = true
	r.err = nil
	r.applied++
	return true
}

func (r *Resource[K, V]) Key() (K, bool) { return r.key, r.hasKey }

// Value returns the last good value for the current key.
func (r *Resource[K, V]) Value() (V, bool) { return r.value, r.hasValue }

func (r *Resource[K, V]) Loading() bool { return r.loading }

// Err returns the error of the latest settled fetch, or nil if it succeeded.
func (r *Resource[K, V]) Err() error { return r.err }

// Applied counts fetch results that replaced the stored value.
func (r *Resource[K, V]) Applied() int { return r.applied }

func (r *Resource[K, V]) Status() Status {
	switch {
	case r.loading:
		return StatusLoading
	case r.err != nil:
		return StatusFailed
	case r.hasValue:
		return StatusReady
	default:
		return StatusIdle
	}
}
