package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexlify/esbridge/config"
	"github.com/nexlify/esbridge/logging"
	"github.com/nexlify/esbridge/native"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the search engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.New(path)
			if err != nil {
				return err
			}

			log := logging.New(&cfg.Logger)

			client, err := native.Open(&native.Config{
				Addresses:   cfg.Engine.Addresses,
				Username:    cfg.Engine.Username,
				Password:    cfg.Engine.Password,
				Sniff:       cfg.Engine.Sniff,
				Healthcheck: cfg.Engine.Healthcheck,
				Gzip:        cfg.Engine.Gzip,
				LogLevel:    cfg.Engine.LogLevel,
			}, log)
			if err != nil {
				return err
			}
			defer client.Close()

			status, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("engine health check failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cluster status: %s\n", status)
			return nil
		},
	}
}
