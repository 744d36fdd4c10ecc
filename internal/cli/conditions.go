package cli

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/effect"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/weather"
)

// latestConditions keeps the most recent refresh result for /conditions.
type latestConditions struct {
	mu        sync.RWMutex
	result    effect.Result[*apperror.Error, weather.Conditions]
	updatedAt time.Time
	set       bool
}

type conditionsResponse struct {
	Status     string              `json:"status"`
	UpdatedAt  *time.Time          `json:"updated_at,omitempty"`
	Conditions *weather.Conditions `json:"conditions,omitempty"`
	Kind       string              `json:"kind,omitempty"`
	Message    string              `json:"message,omitempty"`
}

// Store replaces the held result.
func (l *latestConditions) Store(r effect.Result[*apperror.Error, weather.Conditions], at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.result = r
	l.updatedAt = at
	l.set = true
}

// ServeHTTP answers 200 with the conditions after a successful refresh,
// and 503 before the first refresh or after a failed one.
func (l *latestConditions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	l.mu.RLock()
	resp, code := l.response()
	l.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

func (l *latestConditions) response() (conditionsResponse, int) {
	if !l.set {
		return conditionsResponse{Status: "pending"}, http.StatusServiceUnavailable
	}

	updatedAt := l.updatedAt
	return effect.Fold(l.result,
		func(e *apperror.Error) conditionsResponse {
			return conditionsResponse{
				Status:    "error",
				UpdatedAt: &updatedAt,
				Kind:      string(e.Kind()),
				Message:   e.Error(),
			}
		},
		func(c weather.Conditions) conditionsResponse {
			return conditionsResponse{
				Status:     "ok",
				UpdatedAt:  &updatedAt,
				Conditions: &c,
			}
		},
	), statusCode(l.result)
}

func statusCode(r effect.Result[*apperror.Error, weather.Conditions]) int {
	if r.IsOk() {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
