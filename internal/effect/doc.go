/*
Package effect provides a deferred, typed computation that yields either a
success value or a typed failure.

An [Effect] is a value: building one performs no work. Work happens only when
[Effect.Run] is called, and every call re-executes the underlying actions from
scratch. Nothing is memoized.

# Construction

  - [Of] wraps a context-aware action that may return an error, plus a mapper
    from that error to the failure type.
  - [OfSync] does the same for a synchronous function.
  - [Succeed] and [Fail] lift plain values.

# Combinators

  - [Map] transforms the success value. The function must not fail; use
    [Effect.Refine] or [FlatMap] for fallible steps.
  - [MapError] transforms the failure value.
  - [Effect.Refine] turns a success into a failure when a predicate rejects it,
    without re-running the underlying action.
  - [FlatMap] sequences two effects and short-circuits on the first failure.
  - [ForM] with [Bind] sequences any number of effects in straight-line code.

# Failure channels

Domain failures always travel through the typed failure channel of the
[Result]. A panic raised by a mapper or a [Map] function is a programming
error: it is re-raised as a [*FatalError] panic and is never converted into a
domain failure.
*/
package effect
