// Package policy defines validated retry policies and the delays they produce.
package policy

import (
	"math"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
)

// maxDurationf guards the float64 -> time.Duration conversion against overflow.
const maxDurationf = float64(math.MaxInt64) - 1

// Settings is the mutable input used to build a RetryPolicy.
// It carries mapstructure tags so it can be decoded straight from configuration.
type Settings struct {
	// MaxRetries is the maximum number of additional attempts after the initial failure.
	// For example, if MaxRetries is 3, the operation runs at most 4 times (1 initial + 3 retries).
	// Zero means run once and never retry.
	MaxRetries int `mapstructure:"max-retries"`

	// BackoffFactor is the multiplicative growth applied to the delay after every retry.
	// It must be >= 1.0; exactly 1.0 gives a fixed interval.
	BackoffFactor float64 `mapstructure:"backoff-factor"`

	// InitialDelay is the wait before the first retry. Values <= 0 mean no wait.
	InitialDelay time.Duration `mapstructure:"initial-delay"`

	// AttemptTimeout bounds every single attempt. Zero disables the per-attempt deadline.
	AttemptTimeout time.Duration `mapstructure:"attempt-timeout"`

	// MaxDelay caps a single wait. Zero leaves delays uncapped.
	MaxDelay time.Duration `mapstructure:"max-delay"`
}

// DefaultSettings mirrors the schedule used by the conditions widget:
// three retries, 1.2x growth, one second initial delay, three seconds per attempt.
func DefaultSettings() Settings {
	return Settings{
		MaxRetries:     3,
		BackoffFactor:  1.2,
		InitialDelay:   1 * time.Second,
		AttemptTimeout: 3 * time.Second,
	}
}

// RetryPolicy is an immutable, validated retry configuration.
// Build it with NewRetryPolicy; the zero value runs once with no delay and no timeout.
type RetryPolicy struct {
	maxRetries     int
	backoffFactor  float64
	initialDelay   time.Duration
	attemptTimeout time.Duration
	maxDelay       time.Duration
}

// NewRetryPolicy validates s and returns the corresponding policy.
// Invalid settings are rejected with a CONFIGURATION_ERROR.
func NewRetryPolicy(s Settings) (RetryPolicy, error) {
	switch {
	case s.MaxRetries < 0:
		return RetryPolicy{}, apperror.Newf(apperror.KindConfiguration,
			"max retries must not be negative, got %d", s.MaxRetries)
	case math.IsNaN(s.BackoffFactor) || s.BackoffFactor < 1.0:
		return RetryPolicy{}, apperror.Newf(apperror.KindConfiguration,
			"backoff factor must be >= 1.0, got %v", s.BackoffFactor)
	case s.AttemptTimeout < 0:
		return RetryPolicy{}, apperror.Newf(apperror.KindConfiguration,
			"attempt timeout must not be negative, got %s", s.AttemptTimeout)
	case s.MaxDelay < 0:
		return RetryPolicy{}, apperror.Newf(apperror.KindConfiguration,
			"max delay must not be negative, got %s", s.MaxDelay)
	}

	return RetryPolicy{
		maxRetries:     s.MaxRetries,
		backoffFactor:  s.BackoffFactor,
		initialDelay:   max(s.InitialDelay, 0),
		attemptTimeout: s.AttemptTimeout,
		maxDelay:       s.MaxDelay,
	}, nil
}

// MaxRetries returns the number of re-executions allowed after the first attempt.
func (p RetryPolicy) MaxRetries() int { return p.maxRetries }

// BackoffFactor returns the delay growth factor.
func (p RetryPolicy) BackoffFactor() float64 { return p.backoffFactor }

// InitialDelay returns the wait before the first retry.
func (p RetryPolicy) InitialDelay() time.Duration { return p.initialDelay }

// AttemptTimeout returns the per-attempt deadline, or 0 when disabled.
func (p RetryPolicy) AttemptTimeout() time.Duration { return p.attemptTimeout }

// MaxDelay returns the cap applied to a single wait, or 0 when uncapped.
func (p RetryPolicy) MaxDelay() time.Duration { return p.maxDelay }

// Settings returns the settings the policy was built from.
func (p RetryPolicy) Settings() Settings {
	return Settings{
		MaxRetries:     p.maxRetries,
		BackoffFactor:  p.backoffFactor,
		InitialDelay:   p.initialDelay,
		AttemptTimeout: p.attemptTimeout,
		MaxDelay:       p.maxDelay,
	}
}

// Delay returns the wait before the given retry (1-based):
//
//	InitialDelay * BackoffFactor^(retry-1)
//
// capped at MaxDelay when one is set. Retry numbers below 1 yield 0.
func (p RetryPolicy) Delay(retry int) time.Duration {
	if retry < 1 || p.initialDelay <= 0 {
		return 0
	}

	factor := p.backoffFactor
	if factor < 1.0 {
		factor = 1.0
	}
	delay := float64(p.initialDelay) * math.Pow(factor, float64(retry-1))

	switch {
	case p.maxDelay > 0 && delay > float64(p.maxDelay):
		return p.maxDelay
	case delay > maxDurationf:
		return time.Duration(math.MaxInt64)
	default:
		return time.Duration(delay)
	}
}

// Delays returns every wait the policy can produce, in order.
func (p RetryPolicy) Delays() []time.Duration {
	delays := make([]time.Duration, 0, p.maxRetries)
	for retry := 1; retry <= p.maxRetries; retry++ {
		delays = append(delays, p.Delay(retry))
	}
	return delays
}
