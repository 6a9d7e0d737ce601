package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewEventsCommand creates the events command
func NewEventsCommand(dial ClientFactory) *cobra.Command {
	var (
		eventType string
		limit     int
		payload   bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recently published events",
		Long: `List events recorded by the daemon's database sink, newest first.

Examples:
  plantsim events
  plantsim events --type PurchaseOrderPaid --limit 5 --payload`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			return withClient(dial, func(ctx context.Context, client DaemonClient) error {
				list, err := client.Events(ctx, eventType, limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(list.Events) == 0 {
					fmt.Fprintln(out, "No events found")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TIME\tTYPE\tID")
				for _, e := range list.Events {
					fmt.Fprintf(w, "%s\t%s\t%s\n", e.OccurredAt.Format(time.RFC3339), e.Type, e.ID)
					if payload {
						fmt.Fprintf(w, "\t%s\t\n", string(e.Payload))
					}
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&eventType, "type", "", "Only events of this type")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events")
	cmd.Flags().BoolVar(&payload, "payload", false, "Print each event's JSON payload")

	return cmd
}
