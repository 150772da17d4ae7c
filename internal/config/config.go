// Package config loads generator configuration files.
//
// A configuration file is YAML:
//
//	variant: quarkus
//	inputSpec: api/openapi.yaml
//	outputDir: generated
//	additionalProperties:
//	  interfaceOnly: true
//	  apiPackage: com.example.api
//
// Values given on the command line or through the environment are merged on
// top with Merge.
package config

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/edgar1992/openapi-generator/internal/diagnostic"
	"github.com/edgar1992/openapi-generator/internal/variant"
)

// ErrInvalidConfig is returned for configuration that cannot be read.
var ErrInvalidConfig = errors.New("invalid generator configuration")

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "."

// Config is one generator configuration.
type Config struct {
	// Variant is the library variant name.
	Variant string `yaml:"variant,omitempty"`
	// InputSpec is the path of the OpenAPI document.
	InputSpec string `yaml:"inputSpec,omitempty"`
	// OutputDir is the root of the generated project.
	OutputDir string `yaml:"outputDir,omitempty"`
	// AdditionalProperties are the feature overrides.
	AdditionalProperties map[string]any `yaml:"additionalProperties,omitempty"`
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing config YAML"), ErrInvalidConfig)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Variant == "" {
		cfg.Variant = variant.Default.String()
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	if cfg.AdditionalProperties == nil {
		cfg.AdditionalProperties = map[string]any{}
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Merge returns a copy of cfg with non-empty fields of other applied on top.
// Additional properties are merged key by key.
func (cfg *Config) Merge(other Config) *Config {
	out := &Config{
		Variant:              cfg.Variant,
		InputSpec:            cfg.InputSpec,
		OutputDir:            cfg.OutputDir,
		AdditionalProperties: maps.Clone(cfg.AdditionalProperties),
	}

	if other.Variant != "" {
		out.Variant = other.Variant
	}

	if other.InputSpec != "" {
		out.InputSpec = other.InputSpec
	}

	if other.OutputDir != "" {
		out.OutputDir = other.OutputDir
	}

	if out.AdditionalProperties == nil {
		out.AdditionalProperties = map[string]any{}
	}

	maps.Copy(out.AdditionalProperties, other.AdditionalProperties)

	return out
}

// Validate checks the configuration. needOutput is false for commands that
// do not write files.
func Validate(cfg *Config, needOutput bool) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if cfg.Variant != "" && !variant.Variant(cfg.Variant).Valid() {
		suggestions := variant.Suggest(cfg.Variant)
		if len(suggestions) == 0 {
			suggestions = variant.Names()
		}

		res.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticError,
			Code:        diagnostic.CodeUnsupportedVariant,
			Message:     fmt.Sprintf("unsupported variant %q", cfg.Variant),
			Subject:     "variant",
			Suggestions: suggestions,
		})
	}

	if cfg.InputSpec == "" {
		res.AddError(diagnostic.CodeMissingInputSpec, "no input specification given", "inputSpec")
	}

	if needOutput && cfg.OutputDir == "" {
		res.AddError(diagnostic.CodeMissingOutputDir, "no output directory given", "outputDir")
	}

	return res
}

// ParseProperties parses key=value pairs as given with repeated -p flags.
// Values stay strings; feature resolution interprets them.
func ParseProperties(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		for item := range strings.SplitSeq(pair, ",") {
			key, value, ok := strings.Cut(item, "=")
			key = strings.TrimSpace(key)

			if !ok || key == "" {
				return nil, errors.Mark(errors.Newf("malformed property %q, expected key=value", item), ErrInvalidConfig)
			}

			out[key] = strings.TrimSpace(value)
		}
	}

	return out, nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
