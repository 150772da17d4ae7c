package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edgar1992/openapi-generator/internal/logger"
)

// EnvPrefix is the prefix of environment variables bound to flags.
const EnvPrefix = "OPENAPI_GENERATOR"

// Flag names.
const (
	flagConfig   = "config"
	flagInput    = "input"
	flagOutput   = "output"
	flagVariant  = "variant"
	flagProperty = "property"
	flagFormat   = "format"
	flagDryRun   = "dry-run"
	flagLogJSON  = "log-json"
	flagVerbose  = "verbose"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "openapi-generator",
		Short: "Generate JAX-RS server projects from OpenAPI documents",
		Long: `openapi-generator turns an OpenAPI 3 document into a JAX-RS server project.

Examples:
  openapi-generator generate -i petstore.yaml -o out --variant quarkus
  openapi-generator plan -i petstore.yaml -p interfaceOnly=true
  openapi-generator variants
  openapi-generator config -c generator.yaml

Every flag can also be set through an OPENAPI_GENERATOR_<FLAG> environment
variable, e.g. OPENAPI_GENERATOR_VARIANT=helidon.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := newViper(cmd)
			if err != nil {
				return err
			}

			if err := logger.Initialize(v.GetBool(flagLogJSON), v.GetBool(flagVerbose)); err != nil {
				return errors.Wrap(err, "initializing logger")
			}

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Cleanup()
		},
	}

	root.PersistentFlags().Bool(flagLogJSON, false, "emit logs as JSON")
	root.PersistentFlags().BoolP(flagVerbose, "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd(), newPlanCmd(), newVariantsCmd(), newConfigCmd())

	return root
}

// newViper binds the flags of cmd and the OPENAPI_GENERATOR_* environment.
// Flags given on the command line win over the environment.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}

	return v, nil
}

// addRunFlags registers the flags shared by generate and plan.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagConfig, "c", "", "generator configuration file (YAML)")
	cmd.Flags().StringP(flagInput, "i", "", "OpenAPI document")
	cmd.Flags().String(flagVariant, "", "library variant (see 'variants')")
	cmd.Flags().StringArrayP(flagProperty, "p", nil, "feature override key=value, repeatable")
}
