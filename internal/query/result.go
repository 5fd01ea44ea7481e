package query

// Result is the settled outcome of a fetch or mutation.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool { return r.Err == nil }
