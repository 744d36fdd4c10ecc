package notifications

import (
	"net/http"
	"time"
)

// Webhook posts notifications as JSON to URL, with basic auth when credentials are set.
type Webhook struct {
	URL      string
	Username string
	Password string

	// Client overrides the default 30s-timeout client.
	Client *http.Client
}

// ConditionsFailure describes a pipeline run that ended in a terminal failure.
type ConditionsFailure struct {
	Service   string    `json:"service"`
	RunID     string    `json:"run_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Attempts  int       `json:"attempts"`
	Timestamp time.Time `json:"timestamp"`
}
