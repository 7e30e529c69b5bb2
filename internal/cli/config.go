package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tusk/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			data, err := cfg.YAML()
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			source := cfg.File
			if source == "" {
				source = "(none, using defaults)"
			}
			fmt.Fprintf(a.out, "# config file: %s\n", source)
			fmt.Fprint(a.out, string(data))
			return nil
		},
	}
}
