package effect

import "context"

// Scope is the binding context handed to a ForM body.
type Scope[E any] struct {
	ctx context.Context
}

// Context returns the context the enclosing Effect is running with.
func (s *Scope[E]) Context() context.Context {
	return s.ctx
}

// shortCircuit carries the first failure out of a ForM body.
type shortCircuit[E any] struct {
	scope *Scope[E]
	err   E
}

// Bind runs eff inside a ForM body and returns its value.
// If eff fails, the rest of the body is skipped and the enclosing ForM fails
// with the same error.
//
// Bind must only be called from the goroutine running the body.
func Bind[E, A any](s *Scope[E], eff Effect[E, A]) A {
	r := eff.Run(s.ctx)
	if value, ok := r.Value(); ok {
		return value
	}
	failure, _ := r.Failure()
	panic(shortCircuit[E]{scope: s, err: failure})
}

// ForM builds an Effect from straight-line code that binds other effects in
// order. It is equivalent to nesting FlatMap calls:
//
//	effect.ForM(func(s *effect.Scope[E]) C {
//	    a := effect.Bind(s, first())
//	    b := effect.Bind(s, second(a))
//	    return combine(a, b)
//	})
func ForM[E, A any](body func(s *Scope[E]) A) Effect[E, A] {
	return Effect[E, A]{run: func(ctx context.Context) (result Result[E, A]) {
		s := &Scope[E]{ctx: ctx}
		defer func() {
			if r := recover(); r != nil {
				if sc, ok := r.(shortCircuit[E]); ok && sc.scope == s {
					result = Err[E, A](sc.err)
					return
				}
				panic(r)
			}
		}()
		return Ok[E](body(s))
	}}
}
