package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tarwn/consuming-logs/internal/application/simulation"
)

// NewStatusCommand creates the status command
func NewStatusCommand(dial ClientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the plant summary",
		Long: `Show cash, capacity, order counts per lifecycle stage and inventories.

Example:
  plantsim status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(dial, func(ctx context.Context, client DaemonClient) error {
				st, err := client.Status(ctx)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), st)
				return nil
			})
		},
	}
}

func printStatus(out io.Writer, st *simulation.PlantStatus) {
	state := "idle"
	if st.Running {
		state = "ticking"
	}
	fmt.Fprintf(out, "Interval:  %d (%s)\n", st.Interval, state)
	fmt.Fprintf(out, "Cash:      %s\n", st.Cash.StringFixed(2))
	fmt.Fprintf(out, "Capacity:  %d available\n", st.AvailableCapacity)
	if st.Version != "" {
		fmt.Fprintf(out, "Version:   %s\n", st.Version)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDERS\tOPEN\tIN PROGRESS\tCLOSED")
	fmt.Fprintf(w, "sales\t%d\t%d shipped\t%d\n", st.OpenSalesOrders, st.ShippedSalesOrders, st.ClosedSalesOrders)
	fmt.Fprintf(w, "purchase\t%d\t%d unbilled\t%d\n", st.OpenPurchaseOrders, st.UnbilledPurchaseOrders, st.ClosedPurchaseOrders)
	fmt.Fprintf(w, "production\t%d unscheduled\t%d scheduled\t%d\n", st.UnscheduledProductionOrders, st.ScheduledProductionOrders, st.ClosedProductionOrders)
	fmt.Fprintf(w, "shipments\t%d tracked\t-\t%d delivered\n", st.TrackedShipments, st.ShippingHistory)
	w.Flush()

	printInventory(out, "Parts", st.PartsInventory)
	printInventory(out, "Finished goods", st.FinishedInventory)
	printInventory(out, "Scrapped", st.ScrappedInventory)
}

func printInventory(out io.Writer, title string, inv map[string]int) {
	if len(inv) == 0 {
		return
	}
	parts := make([]string, 0, len(inv))
	for p := range inv {
		parts = append(parts, p)
	}
	sort.Strings(parts)

	fmt.Fprintf(out, "\n%s:\n", title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, p := range parts {
		fmt.Fprintf(w, "  %s\t%d\n", p, inv[p])
	}
	w.Flush()
}
