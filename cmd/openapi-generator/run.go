package main

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edgar1992/openapi-generator/internal/config"
	"github.com/edgar1992/openapi-generator/internal/diagnostic"
	"github.com/edgar1992/openapi-generator/internal/engine"
	"github.com/edgar1992/openapi-generator/internal/feature"
	"github.com/edgar1992/openapi-generator/internal/logger"
	"github.com/edgar1992/openapi-generator/internal/openapi"
)

// run is one prepared generation run.
type run struct {
	cfg    *config.Config
	doc    *openapi.Document
	result *engine.Result
}

// loadConfig merges the configuration file, the environment and the flags.
func loadConfig(cmd *cobra.Command, needOutput bool) (*config.Config, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, err
	}

	cfg := config.Default()

	if path := v.GetString(flagConfig); path != "" {
		cfg, err = config.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	props, err := config.ParseProperties(properties(v))
	if err != nil {
		return nil, err
	}

	cfg = cfg.Merge(config.Config{
		Variant:              v.GetString(flagVariant),
		InputSpec:            v.GetString(flagInput),
		OutputDir:            v.GetString(flagOutput),
		AdditionalProperties: props,
	})

	diags := config.Validate(cfg, needOutput)
	if !diags.IsValid() {
		err := errors.Mark(diags.Error(), config.ErrInvalidConfig)

		for _, d := range diags.WithCode(diagnostic.CodeUnsupportedVariant) {
			err = errors.WithHintf(err, "%s: try one of %s", d.Subject, strings.Join(d.Suggestions, ", "))
		}

		return nil, err
	}

	return cfg, nil
}

// properties returns the -p values. Values from the environment arrive as
// one comma separated string.
func properties(v *viper.Viper) []string {
	return v.GetStringSlice(flagProperty)
}

// prepare loads the configuration and the document and plans the run.
func prepare(cmd *cobra.Command, needOutput bool) (*run, error) {
	cfg, err := loadConfig(cmd, needOutput)
	if err != nil {
		return nil, err
	}

	doc, err := openapi.LoadFile(cfg.InputSpec)
	if err != nil {
		return nil, err
	}

	overrides := documentDefaults(doc, cfg.AdditionalProperties)

	logger.Debugw("run configured",
		"variant", cfg.Variant,
		"input", cfg.InputSpec,
		"overrides", len(overrides))

	result, err := engine.Run(engine.Request{
		Variant:    cfg.Variant,
		Overrides:  overrides,
		Operations: doc.Operations(),
		Models:     doc.Models(),
	})
	if err != nil {
		return nil, err
	}

	printDiagnostics(cmd.ErrOrStderr(), result.Diagnostics)

	return &run{cfg: cfg, doc: doc, result: result}, nil
}

// documentDefaults fills title and artifactVersion from the document info
// unless configured.
func documentDefaults(doc *openapi.Document, props map[string]any) map[string]any {
	out := make(map[string]any, len(props)+2)
	for k, v := range props {
		out[k] = v
	}

	if _, ok := out[feature.KeyTitle]; !ok && doc.Title() != "" {
		out[feature.KeyTitle] = doc.Title()
	}

	if _, ok := out[feature.KeyArtifactVersion]; !ok && doc.Version() != "" {
		out[feature.KeyArtifactVersion] = doc.Version()
	}

	return out
}

// printDiagnostics reports warnings on w, or through the logger in JSON
// mode. Stdout is left to the command output.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, d := range diags.Warnings {
		if logger.JSONOutput {
			logger.Warnw(d.Message, "code", d.Code, "subject", d.Subject)
			continue
		}

		pterm.Warning.WithWriter(w).Println(d.String())
	}

	for _, d := range diags.Infos {
		logger.Infow(d.Message, "code", d.Code, "subject", d.Subject)
	}
}
