package main

import (
	"github.com/spf13/cobra"

	"github.com/edgar1992/openapi-generator/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Config merges the configuration file, the OPENAPI_GENERATOR_* environment
and the flags the same way generate does, validates the result and prints it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, false)
			if err != nil {
				return err
			}

			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	addRunFlags(cmd)
	cmd.Flags().StringP(flagOutput, "o", "", "output directory")

	return cmd
}
