package effect

import (
	"context"
	"fmt"
)

// Effect is a deferred computation that yields an A or fails with an E.
// The zero value is not usable; build effects with the constructors.
type Effect[E, A any] struct {
	run func(ctx context.Context) Result[E, A]
}

// FatalError is the panic value raised when a user-supplied mapper or
// transformation panics. It marks a programming error, not a domain failure.
type FatalError struct {
	Op    string
	Value any
}

// Error implements the error interface.
func (f *FatalError) Error() string {
	return fmt.Sprintf("effect: %s panicked: %v", f.Op, f.Value)
}

// Unwrap returns the panic value when it was an error.
func (f *FatalError) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

// guard calls fn and re-raises any panic as a *FatalError tagged with op.
func guard[T any](op string, fn func() T) T {
	defer func() {
		if r := recover(); r != nil {
			if fatal, ok := r.(*FatalError); ok {
				panic(fatal)
			}
			panic(&FatalError{Op: op, Value: r})
		}
	}()
	return fn()
}

// Of builds an Effect from an action that may fail with a native error.
// On failure, onError is called exactly once and its result becomes the
// Effect's failure. onError must be total.
func Of[E, A any](action func(ctx context.Context) (A, error), onError func(error) E) Effect[E, A] {
	return Effect[E, A]{run: func(ctx context.Context) Result[E, A] {
		value, err := action(ctx)
		if err != nil {
			return Err[E, A](guard("error mapper", func() E { return onError(err) }))
		}
		return Ok[E](value)
	}}
}

// OfSync builds an Effect from a synchronous function.
func OfSync[E, A any](fn func() (A, error), onError func(error) E) Effect[E, A] {
	return Of(func(context.Context) (A, error) { return fn() }, onError)
}

// Succeed builds an Effect that always yields value.
func Succeed[E, A any](value A) Effect[E, A] {
	return Effect[E, A]{run: func(context.Context) Result[E, A] {
		return Ok[E](value)
	}}
}

// Fail builds an Effect that always fails with err.
func Fail[E, A any](err E) Effect[E, A] {
	return Effect[E, A]{run: func(context.Context) Result[E, A] {
		return Err[E, A](err)
	}}
}

// Suspend builds an Effect from a function that produces a Result directly.
// It is the escape hatch for combinators that need full control over execution,
// such as retry schedulers.
func Suspend[E, A any](run func(ctx context.Context) Result[E, A]) Effect[E, A] {
	return Effect[E, A]{run: run}
}

// Run executes the Effect and returns its Result.
// Each call runs the underlying actions again.
func (e Effect[E, A]) Run(ctx context.Context) Result[E, A] {
	if e.run == nil {
		panic("effect: Run called on a zero Effect")
	}
	return e.run(ctx)
}

// Refine validates the success value. When pred returns false the Effect
// fails with onFalse(value). The underlying action is not re-run.
func (e Effect[E, A]) Refine(pred func(A) bool, onFalse func(A) E) Effect[E, A] {
	return Effect[E, A]{run: func(ctx context.Context) Result[E, A] {
		r := e.Run(ctx)
		value, ok := r.Value()
		if !ok || pred(value) {
			return r
		}
		return Err[E, A](onFalse(value))
	}}
}

// Map transforms the success value. Failures pass through unchanged.
// f must not fail; a panic in f is fatal.
func Map[E, A, B any](e Effect[E, A], f func(A) B) Effect[E, B] {
	return Effect[E, B]{run: func(ctx context.Context) Result[E, B] {
		r := e.Run(ctx)
		if value, ok := r.Value(); ok {
			return Ok[E](guard("map", func() B { return f(value) }))
		}
		failure, _ := r.Failure()
		return Err[E, B](failure)
	}}
}

// MapError transforms the failure value. Successes pass through unchanged.
func MapError[E, F, A any](e Effect[E, A], f func(E) F) Effect[F, A] {
	return Effect[F, A]{run: func(ctx context.Context) Result[F, A] {
		r := e.Run(ctx)
		if failure, failed := r.Failure(); failed {
			return Err[F, A](guard("error mapper", func() F { return f(failure) }))
		}
		value, _ := r.Value()
		return Ok[F](value)
	}}
}

// FlatMap runs e and, if it succeeds, builds and runs the next Effect from its
// value. If e fails, f is never called.
func FlatMap[E, A, B any](e Effect[E, A], f func(A) Effect[E, B]) Effect[E, B] {
	return Effect[E, B]{run: func(ctx context.Context) Result[E, B] {
		r := e.Run(ctx)
		if value, ok := r.Value(); ok {
			return f(value).Run(ctx)
		}
		failure, _ := r.Failure()
		return Err[E, B](failure)
	}}
}
