package effect

import "fmt"

// Result is the terminal outcome of running an Effect: either Ok(value) or Err(failure).
type Result[E, A any] struct {
	value A
	err   E
	ok    bool
}

// Ok creates a successful Result.
func Ok[E, A any](value A) Result[E, A] {
	return Result[E, A]{value: value, ok: true}
}

// Err creates a failed Result.
func Err[E, A any](err E) Result[E, A] {
	return Result[E, A]{err: err}
}

// IsOk reports whether the Result holds a success value.
func (r Result[E, A]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the Result holds a failure.
func (r Result[E, A]) IsErr() bool {
	return !r.ok
}

// Value returns the success value and true, or the zero value and false.
func (r Result[E, A]) Value() (A, bool) {
	return r.value, r.ok
}

// Failure returns the failure and true, or the zero value and false.
func (r Result[E, A]) Failure() (E, bool) {
	return r.err, !r.ok
}

// String implements fmt.Stringer.
func (r Result[E, A]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%v)", r.err)
}

// Fold collapses a Result into a single value by applying onErr or onOk.
func Fold[E, A, B any](r Result[E, A], onErr func(E) B, onOk func(A) B) B {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.err)
}
