package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/workflow"
	"github.com/go-co-op/gocron-ui/server"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var daemonCommand = &cobra.Command{
	Use:     "daemon",
	Short:   "Run Weather in daemon mode",
	GroupID: "weather",
	Long: `Refreshes the current conditions on a fixed interval and serves the latest
result at /conditions, Prometheus metrics at /metrics and the scheduler
dashboard at /.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), banner("Daemon Mode"))

		dlog := workflow.SetupLogger(cfg.LogLevel).With("component", "daemon")
		notifier := webhookFor(cfg)
		latest := &latestConditions{}

		s, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}

		// Declared first so the task closure can report the next run.
		var refreshJob gocron.Job

		startAt := gocron.WithStartDateTime(time.Now().Add(cfg.Daemon.Interval))
		if cfg.Daemon.RunOnStart {
			startAt = gocron.WithStartImmediately()
		}

		refreshJob, err = s.NewJob(
			gocron.DurationJob(cfg.Daemon.Interval),
			gocron.NewTask(func() {
				result := workflow.RunCurrentConditions(cmd.Context(), cfg, notifier, dlog)
				latest.Store(result, time.Now())

				if refreshJob != nil {
					if nextRun, err := refreshJob.NextRun(); err == nil {
						dlog.Info("Conditions refresh completed",
							"next_run", nextRun.Format(time.RFC3339),
							"job_id", refreshJob.ID())
					}
				}
			}),
			gocron.WithName("Current Conditions Refresh"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(startAt),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule refresh job: %w", err)
		}

		s.Start()
		dlog.Info("Scheduler started",
			"job_name", refreshJob.Name(),
			"job_id", refreshJob.ID(),
			"interval", cfg.Daemon.Interval)

		srv, err := newDaemonServer(s, cfg.Daemon.BindAddress, latest)
		if err != nil {
			_ = s.Shutdown()
			return err
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			dlog.Info("Dashboard and metrics server started", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			dlog.Warn("Shutting down scheduler due to system signal...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return errors.Join(srv.Shutdown(shutdownCtx), s.Shutdown())
		})

		return g.Wait()
	},
}

// newDaemonServer mounts the scheduler dashboard, metrics and the latest result on one listener.
func newDaemonServer(s gocron.Scheduler, bindAddress string, latest *latestConditions) (*http.Server, error) {
	_, portText, err := net.SplitHostPort(bindAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid bind address %q: %w", bindAddress, err)
	}
	port, err := strconv.Atoi(portText)
	if err != nil {
		return nil, fmt.Errorf("invalid bind address %q: %w", bindAddress, err)
	}

	ui := server.NewServer(s, port, server.WithTitle("Weather - Dashboard"))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/conditions", latest)
	mux.Handle("/", ui.Router)

	return &http.Server{
		Addr:              bindAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}

func init() {
	rootCommand.AddCommand(daemonCommand)

	daemonCommand.Flags().Duration("interval", 0, "Refresh interval (default 10m)")
	daemonCommand.Flags().String("bind-address", "", "Address to bind the dashboard and metrics server (default 0.0.0.0:8080)")
	daemonCommand.Flags().Bool("run-on-start", true, "Refresh immediately instead of waiting one interval")

	_ = settings.BindPFlag("daemon.interval", daemonCommand.Flags().Lookup("interval"))
	_ = settings.BindPFlag("daemon.bind-address", daemonCommand.Flags().Lookup("bind-address"))
	_ = settings.BindPFlag("daemon.run-on-start", daemonCommand.Flags().Lookup("run-on-start"))
}
