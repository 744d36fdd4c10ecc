// Package workflow wires the weather lookups, the retry schedule and the
// ambient concerns (logging, metrics, notifications) into runnable jobs.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/config"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/effect"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/metrics"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/notifications"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/schedule"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/transport"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/weather"
	"github.com/google/uuid"
)

const (
	serviceName   = "weather"
	operationName = "current-conditions"
	notifyTimeout = 30 * time.Second
)

// Notifier delivers terminal failures. *notifications.Webhook satisfies it.
type Notifier interface {
	Notify(ctx context.Context, n notifications.ConditionsFailure) error
}

// Pipeline resolves the caller's location, validates its coordinates, fetches
// the weather there and maps both into Conditions. The first failing step
// ends the pipeline; later steps never start.
func Pipeline(svc *weather.Service) effect.Effect[*apperror.Error, weather.Conditions] {
	return effect.ForM(func(s *effect.Scope[*apperror.Error]) weather.Conditions {
		location := effect.Bind(s, svc.CurrentLocation())
		coordinates := effect.Bind(s, svc.Coordinates(location))
		report := effect.Bind(s, svc.CurrentWeather(coordinates))

		return weather.ToConditions(location, report)
	})
}

// CurrentConditions wraps Pipeline in the retry schedule. Every execution of
// the returned effect re-runs the whole pipeline, up to the schedule's budget.
func CurrentConditions(svc *weather.Service, s *schedule.Schedule) effect.Effect[*apperror.Error, weather.Conditions] {
	return schedule.RetryIf(s, Pipeline(svc), (*apperror.Error).Retryable, asWeatherLookupFailure)
}

// asWeatherLookupFailure reports every terminal failure as a weather lookup
// failure, keeping the original as its cause.
func asWeatherLookupFailure(e *apperror.Error) *apperror.Error {
	if e.Kind() == apperror.KindWeatherLookupFailed {
		return e
	}
	return apperror.Wrap(e, apperror.KindWeatherLookupFailed, "failed to retrieve current weather conditions")
}

// RunCurrentConditions executes one retried pipeline run against cfg.
//
// The run is tagged with a request ID in every log line. A terminal failure is
// logged, counted and, when notifier is not nil, delivered to it. The returned
// Result is the pipeline's; presentation is left to the caller.
func RunCurrentConditions(
	ctx context.Context,
	cfg config.Config,
	notifier Notifier,
	logger *slog.Logger,
) effect.Result[*apperror.Error, weather.Conditions] {
	runID := fmt.Sprintf("req-%s", uuid.New().String())
	logger = logger.With("workflow", operationName, "run_id", runID)

	logger.Info("Resolving current weather conditions",
		"location_url", cfg.LocationURL,
		"weather_url", cfg.WeatherURL)

	if timeout := cfg.RunTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
		logger.Debug("Global workflow timeout configured", "timeout", timeout)
	}

	attempts := 0
	s, err := schedule.NewFromSettings(cfg.Retry,
		schedule.WithName(operationName),
		schedule.WithLogger(logger),
		schedule.OnAttempt(func(st schedule.Status) {
			attempts = st.Attempt
			metrics.AttemptsTotal.WithLabelValues(st.Name, st.Outcome()).Inc()
			logger.Debug("Attempt finished",
				"attempt", st.String(),
				"outcome", st.Outcome(),
				"elapsed", st.Elapsed)
		}),
		schedule.OnRetry(func(st schedule.Status) {
			metrics.RetriesTotal.WithLabelValues(st.Name, string(st.Err.Kind())).Inc()
		}),
	)
	if err != nil {
		var failure *apperror.Error
		if !errors.As(err, &failure) {
			failure = apperror.Wrap(err, apperror.KindConfiguration, "invalid retry settings")
		}
		logger.Error("Retry schedule rejected", "error", failure)
		metrics.PipelineRunsTotal.WithLabelValues(string(failure.Kind())).Inc()
		return effect.Err[*apperror.Error, weather.Conditions](failure)
	}

	svc := weather.NewService(transport.NewClient(cfg.HTTPTimeout), cfg.LocationURL, cfg.WeatherURL)
	result := CurrentConditions(svc, s).Run(ctx)

	outcome := effect.Fold(result,
		func(failure *apperror.Error) string {
			logger.Error("Current conditions lookup failed",
				"kind", failure.Kind(),
				"attempts", attempts,
				"error", failure)
			if notifier != nil {
				notify(ctx, notifier, logger, notifications.ConditionsFailure{
					Service:   serviceName,
					RunID:     runID,
					Kind:      string(failure.Kind()),
					Message:   failure.Error(),
					Retryable: failure.Retryable(),
					Attempts:  attempts,
					Timestamp: time.Now().UTC(),
				})
			}
			return string(failure.Kind())
		},
		func(c weather.Conditions) string {
			logger.Info("Current conditions retrieved",
				"city", c.City,
				"country", c.Country,
				"temperature", fmt.Sprintf("%g %s", c.Temperature, c.TemperatureUnit),
				"attempts", attempts)
			return "success"
		},
	)
	metrics.PipelineRunsTotal.WithLabelValues(outcome).Inc()

	return result
}

// notify delivers n on a context detached from the run's deadline, so a run
// that failed by timing out can still be reported.
func notify(ctx context.Context, notifier Notifier, logger *slog.Logger, n notifications.ConditionsFailure) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := notifier.Notify(ctx, n); err != nil {
		logger.Warn("Failure notification could not be delivered", "error", err)
		return
	}
	logger.Debug("Failure notification delivered")
}
