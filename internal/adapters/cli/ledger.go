package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewLedgerCommand creates the ledger command
func NewLedgerCommand(dial ClientFactory) *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show the cash flow statement",
		Long: `Show cash flow per ledger category for a date range.

The daemon records supplier payments and customer receipts as ledger entries.
Both dates are optional and inclusive.

Examples:
  plantsim ledger
  plantsim ledger --start-date 2024-01-15 --end-date 2024-01-22`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate("start-date", startDate)
			if err != nil {
				return err
			}
			end, err := parseDate("end-date", endDate)
			if err != nil {
				return err
			}

			return withClient(dial, func(ctx context.Context, client DaemonClient) error {
				flow, err := client.CashFlow(ctx, start, end)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Cash flow: %s (%d entries)\n\n", flow.Period, flow.Entries)

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "CATEGORY\tINFLOW\tOUTFLOW\tNET\tENTRIES")
				for _, c := range flow.Categories {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", c.Category, c.Inflow, c.Outflow, c.NetFlow, c.Entries)
				}
				fmt.Fprintf(w, "TOTAL\t\t\t%s\t%d\n", flow.NetFlow, flow.Entries)
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")

	return cmd
}

func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flag, value)
	}
	return &t, nil
}
