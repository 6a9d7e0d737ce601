// Package cli is the plantsim command line client
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	socketPath string
	configPath string
)

// NewRootCommand creates the root command talking to the daemon over gRPC
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithClient(DialDaemon)
}

// NewRootCommandWithClient creates the root command with a custom client factory
func NewRootCommandWithClient(dial ClientFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plantsim",
		Short: "plantsim CLI - inspect and drive the plant daemon",
		Long: `plantsim CLI talks to a running plant daemon over its Unix socket.

Examples:
  plantsim status
  plantsim tick
  plantsim ledger --start-date 2024-01-01 --end-date 2024-01-31
  plantsim events --type SalesOrderInvoiced --limit 5
  plantsim config validate --config ./configs/config.yaml`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", getDefaultSocketPath(),
		"Path to daemon Unix socket")

	rootCmd.AddCommand(NewStatusCommand(dial))
	rootCmd.AddCommand(NewTickCommand(dial))
	rootCmd.AddCommand(NewLedgerCommand(dial))
	rootCmd.AddCommand(NewEventsCommand(dial))
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// getDefaultSocketPath returns the default socket path
func getDefaultSocketPath() string {
	if path := os.Getenv("PLANTSIM_SOCKET"); path != "" {
		return path
	}
	return "/tmp/plantsim-daemon.sock"
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
