package cli

import (
	"fmt"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/display"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/policy"
	"github.com/spf13/cobra"
)

var policyCommand = &cobra.Command{
	Use:     "policy",
	GroupID: "weather",
	Short:   "Print the effective retry schedule",
	Long:    `Shows every attempt the current retry settings allow, the backoff wait before it and the per-attempt deadline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := policy.NewRetryPolicy(cfg.Retry)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, banner("Retry Policy"))
		fmt.Fprintf(out, "max retries: %d  backoff factor: %g  initial delay: %s\n\n",
			p.MaxRetries(), p.BackoffFactor(), p.InitialDelay())
		fmt.Fprintln(out, display.Schedule(p))
		return nil
	},
}

func init() {
	rootCommand.AddCommand(policyCommand)
}
