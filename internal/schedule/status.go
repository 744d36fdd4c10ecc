package schedule

import (
	"fmt"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
)

// Status describes one finished attempt of a retry loop.
type Status struct {
	// Name is the label given to the schedule with WithName.
	Name string
	// Attempt is the 1-based number of the attempt that just finished.
	Attempt int
	// MaxRetries is the retry budget of the policy.
	MaxRetries int
	// Err is the attempt's failure, or nil when it succeeded.
	Err *apperror.Error
	// NextDelay is the wait before the next attempt. Zero when no retry follows.
	NextDelay time.Duration
	// Elapsed is how long the attempt ran.
	Elapsed time.Duration
	// WillRetry reports whether another attempt follows.
	WillRetry bool
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return fmt.Sprintf("attempt %d/%d", s.Attempt, s.MaxRetries+1)
}

// Outcome returns a short label for metrics: "success", "retry" or "failure".
func (s Status) Outcome() string {
	switch {
	case s.Err == nil:
		return "success"
	case s.WillRetry:
		return "retry"
	default:
		return "failure"
	}
}
