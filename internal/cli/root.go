package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// settings is the viper instance every command reads from.
	settings = viper.New()
	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg config.Config
)

var rootCommand = &cobra.Command{
	Use:   "weather",
	Short: "Weather: current conditions for wherever you are",
	Long: `Weather resolves your location from your public IP address, fetches the
current conditions there from open-meteo, and retries transient failures
with exponential backoff.

Settings come from flags, WEATHER_* environment variables, an optional
YAML file (--config) and a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Allow 'version' (and 'help') to run without loading configuration
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		loaded, err := config.Load(settings)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCommand.ExecuteContext(ctx)
}

func init() {
	rootCommand.AddGroup(&cobra.Group{ID: "weather", Title: "Weather"})

	flags := rootCommand.PersistentFlags()
	flags.String("config", "", "Path to a YAML configuration file")
	flags.String("log-level", "info", "Logging level (debug, info, warn, error)")
	flags.Int("timeout", 0, "Global execution timeout in seconds (0 = run indefinitely)")
	flags.String("location-url", "", "Location lookup endpoint (default ipinfo.io)")
	flags.String("weather-url", "", "Weather forecast endpoint (default open-meteo)")
	flags.Duration("http-timeout", 0, "Timeout of a single HTTP request")

	flags.Int("max-retries", 0, "Retries after the first failed attempt")
	flags.Float64("backoff-factor", 0, "Growth factor applied to the delay after each retry (>= 1.0)")
	flags.Duration("initial-delay", 0, "Wait before the first retry")
	flags.Duration("attempt-timeout", 0, "Deadline of a single attempt (0 = none)")
	flags.Duration("max-delay", 0, "Cap on a single wait (0 = uncapped)")

	flags.String("webhook-url", "", "Webhook URL for failure alerts")
	flags.String("webhook-username", "", "Webhook username for failure alerts")
	flags.String("webhook-password", "", "Webhook password for failure alerts")

	// Flag name -> configuration key. Only flags set on the command line
	// override env, file and defaults.
	bindings := map[string]string{
		"config":           "config",
		"log-level":        "log-level",
		"timeout":          "timeout",
		"location-url":     "location-url",
		"weather-url":      "weather-url",
		"http-timeout":     "http-timeout",
		"max-retries":      "retry.max-retries",
		"backoff-factor":   "retry.backoff-factor",
		"initial-delay":    "retry.initial-delay",
		"attempt-timeout":  "retry.attempt-timeout",
		"max-delay":        "retry.max-delay",
		"webhook-url":      "webhook.url",
		"webhook-username": "webhook.username",
		"webhook-password": "webhook.password",
	}
	for flag, key := range bindings {
		if err := settings.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %q: %v", flag, err))
		}
	}

	config.SetDefaults(settings)
	config.BindEnv(settings)
}
