package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewTickCommand creates the tick command
func NewTickCommand(dial ClientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Run one interval now",
		Long: `Ask the daemon to run one interval outside its wall-clock loop.

The request is dropped when an interval is already running, and the daemon
throttles how often manual ticks are accepted.

Example:
  plantsim tick`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(dial, func(ctx context.Context, client DaemonClient) error {
				tick, err := client.Tick(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !tick.Ran {
					fmt.Fprintf(out, "Interval %d already running, tick dropped\n", tick.Interval)
					return nil
				}
				fmt.Fprintf(out, "Interval %d: %d actions, %d events in %dms\n", tick.Interval, tick.Actions, tick.Events, tick.DurationMs)
				for _, s := range tick.Steps {
					if s.Actions > 0 {
						fmt.Fprintf(out, "  %-40s %d\n", s.Step, s.Actions)
					}
				}
				return nil
			})
		},
	}
}
