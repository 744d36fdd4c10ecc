package cli

import (
	"fmt"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/config"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/display"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/notifications"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/workflow"
	"github.com/spf13/cobra"
)

var nowCommand = &cobra.Command{
	Use:     "now",
	GroupID: "weather",
	Short:   "Show the current weather conditions once",
	Long:    `Resolves your location, fetches the current conditions and prints them. Transient failures are retried according to the retry settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), banner("Current Conditions"))

		logger := workflow.SetupLogger(cfg.LogLevel)
		result := workflow.RunCurrentConditions(cmd.Context(), cfg, webhookFor(cfg), logger)

		fmt.Fprintln(cmd.OutOrStdout(), display.Result(result))

		if failure, failed := result.Failure(); failed {
			return fmt.Errorf("current conditions unavailable: %s", failure.Kind())
		}
		return nil
	},
}

// webhookFor returns the configured notifier, or nil when none is configured.
func webhookFor(c config.Config) workflow.Notifier {
	if !c.Webhook.Enabled() {
		return nil
	}
	return &notifications.Webhook{
		URL:      c.Webhook.URL,
		Username: c.Webhook.Username,
		Password: c.Webhook.Password,
	}
}

func init() {
	rootCommand.AddCommand(nowCommand)
}
