// Package schedule re-executes effects according to a retry policy.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/effect"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/policy"
)

// Schedule applies a RetryPolicy to effects that fail with *apperror.Error.
// A Schedule holds no per-run state and can wrap any number of effects.
type Schedule struct {
	policy    policy.RetryPolicy
	name      string
	logger    *slog.Logger
	onAttempt func(Status)
	onRetry   func(Status)

	// wait blocks for d or until ctx ends. Replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// Option configures a Schedule.
type Option func(s *Schedule)

// WithName labels the schedule in logs and Status values.
func WithName(name string) Option {
	return func(s *Schedule) {
		s.name = name
	}
}

// WithLogger sets the logger used to report retries. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Schedule) {
		s.logger = logger
	}
}

// OnAttempt registers a function called after every attempt, successful or not.
func OnAttempt(fn func(Status)) Option {
	return func(s *Schedule) {
		s.onAttempt = fn
	}
}

// OnRetry registers a function called after each failed attempt that will be retried,
// before the backoff wait starts.
func OnRetry(fn func(Status)) Option {
	return func(s *Schedule) {
		s.onRetry = fn
	}
}

// New creates a Schedule for an already validated policy.
func New(p policy.RetryPolicy, options ...Option) *Schedule {
	s := &Schedule{
		policy: p,
		name:   "effect",
		logger: slog.Default(),
		wait:   sleep,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// NewFromSettings validates settings and creates a Schedule.
// Invalid settings are rejected here, before anything runs, with a CONFIGURATION_ERROR.
func NewFromSettings(settings policy.Settings, options ...Option) (*Schedule, error) {
	p, err := policy.NewRetryPolicy(settings)
	if err != nil {
		return nil, err
	}
	return New(p, options...), nil
}

// Policy returns the policy the schedule applies.
func (s *Schedule) Policy() policy.RetryPolicy {
	return s.policy
}

// Retry wraps eff so that running it retries retryable failures.
// The terminal failure is returned untouched.
func Retry[A any](s *Schedule, eff effect.Effect[*apperror.Error, A]) effect.Effect[*apperror.Error, A] {
	return retrying(s, eff, isRetryable)
}

// RetryIf wraps eff so that running it retries failures for which retryIf returns true.
// Once the budget is exhausted or a failure is not retried, the last failure is
// passed through mapErr. mapErr is applied to every terminal failure.
// A nil retryIf falls back to the error's own classification.
func RetryIf[F, A any](
	s *Schedule,
	eff effect.Effect[*apperror.Error, A],
	retryIf func(*apperror.Error) bool,
	mapErr func(*apperror.Error) F,
) effect.Effect[F, A] {
	if retryIf == nil {
		retryIf = isRetryable
	}
	return effect.MapError(retrying(s, eff, retryIf), mapErr)
}

func isRetryable(err *apperror.Error) bool {
	return err != nil && err.Retryable()
}

// retrying is the retry loop shared by Retry and RetryIf.
func retrying[A any](
	s *Schedule,
	eff effect.Effect[*apperror.Error, A],
	retryIf func(*apperror.Error) bool,
) effect.Effect[*apperror.Error, A] {
	return effect.Suspend(func(ctx context.Context) effect.Result[*apperror.Error, A] {
		maxRetries := s.policy.MaxRetries()

		for attempt := 1; ; attempt++ {
			start := time.Now()
			result := runAttempt(ctx, s.policy.AttemptTimeout(), eff, attempt)

			failure, failed := result.Failure()
			status := Status{
				Name:       s.name,
				Attempt:    attempt,
				MaxRetries: maxRetries,
				Elapsed:    time.Since(start),
			}
			if failed {
				status.Err = failure
				status.WillRetry = ctx.Err() == nil && attempt <= maxRetries && retryIf(failure)
				if status.WillRetry {
					status.NextDelay = s.policy.Delay(attempt)
				}
			}

			if s.onAttempt != nil {
				s.onAttempt(status)
			}
			if !status.WillRetry {
				return result
			}

			s.logger.Warn("Transient error detected, scheduling retry",
				"operation", s.name,
				"attempt", attempt,
				"max_retries", maxRetries,
				"next_delay", status.NextDelay,
				"error", failure)

			if s.onRetry != nil {
				s.onRetry(status)
			}

			if err := s.wait(ctx, status.NextDelay); err != nil {
				s.logger.Debug("Retry loop stopped by context",
					"operation", s.name,
					"attempt", attempt,
					"error", err)
				return result
			}
		}
	})
}

// attemptOutcome carries an attempt's result, or the panic it raised, back to the scheduler.
type attemptOutcome[A any] struct {
	result     effect.Result[*apperror.Error, A]
	panicked   bool
	panicValue any
}

// runAttempt executes a single attempt, bounded by timeout when it is positive.
// An attempt that ignores its deadline is abandoned; its late result is discarded.
func runAttempt[A any](
	ctx context.Context,
	timeout time.Duration,
	eff effect.Effect[*apperror.Error, A],
	attempt int,
) effect.Result[*apperror.Error, A] {
	if timeout <= 0 {
		return eff.Run(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan attemptOutcome[A], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attemptOutcome[A]{panicked: true, panicValue: r}
			}
		}()
		done <- attemptOutcome[A]{result: eff.Run(attemptCtx)}
	}()

	timedOut := func() effect.Result[*apperror.Error, A] {
		return effect.Err[*apperror.Error, A](apperror.Wrap(
			context.DeadlineExceeded,
			apperror.KindTimeout,
			fmt.Sprintf("attempt %d exceeded timeout of %s", attempt, timeout),
		))
	}

	select {
	case out := <-done:
		if out.panicked {
			panic(out.panicValue)
		}
		// A failure reported after the deadline passed is the deadline's doing.
		if out.result.IsErr() && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return timedOut()
		}
		return out.result
	case <-attemptCtx.Done():
		if err := ctx.Err(); err != nil {
			return effect.Err[*apperror.Error, A](apperror.Wrap(
				err,
				apperror.KindTimeout,
				fmt.Sprintf("attempt %d cancelled", attempt),
			))
		}
		return timedOut()
	}
}

// sleep waits for d, returning early with the context's error if ctx ends first.
func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
