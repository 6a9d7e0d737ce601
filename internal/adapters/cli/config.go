package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tarwn/consuming-logs/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Check and display configuration",
		Long: `Check and display plantsim configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (PLANTSIM_* prefix)
2. Config file (config.yaml)
3. Default values

Examples:
  plantsim config validate --config ./configs/config.yaml
  plantsim config show`,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	cmd.AddCommand(newConfigValidateCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long: `Load the configuration and run every startup check: plant document schema,
field validation and plant consistency.

Example:
  plantsim config validate --config ./configs/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %d products, %d parts\n",
				len(cfg.Plant.Products), len(cfg.Plant.Parts))
			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Print the configuration after defaults and environment overrides, as YAML.
Secrets are masked.

Example:
  plantsim config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			out, err := config.Render(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
