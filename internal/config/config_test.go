package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgar1992/openapi-generator/internal/diagnostic"
)

func TestParse(t *testing.T) {
	yaml := `
variant: openliberty
inputSpec: api/openapi.yaml
outputDir: out
additionalProperties:
  interfaceOnly: true
  apiPackage: com.example.api
`

	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "openliberty", cfg.Variant)
	assert.Equal(t, "api/openapi.yaml", cfg.InputSpec)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, true, cfg.AdditionalProperties["interfaceOnly"])
	assert.Equal(t, "com.example.api", cfg.AdditionalProperties["apiPackage"])
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("inputSpec: spec.yaml\n"))
	require.NoError(t, err)

	assert.Equal(t, "jaxrs-spec", cfg.Variant)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.NotNil(t, cfg.AdditionalProperties)
	assert.Equal(t, Default().Variant, cfg.Variant)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("variant: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: helidon\ninputSpec: x.yaml\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "helidon", cfg.Variant)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestMerge(t *testing.T) {
	base := &Config{
		Variant:              "quarkus",
		InputSpec:            "a.yaml",
		OutputDir:            "out",
		AdditionalProperties: map[string]any{"generatePom": "false", "title": "A"},
	}

	merged := base.Merge(Config{
		OutputDir:            "other",
		AdditionalProperties: map[string]any{"title": "B"},
	})

	assert.Equal(t, "quarkus", merged.Variant)
	assert.Equal(t, "a.yaml", merged.InputSpec)
	assert.Equal(t, "other", merged.OutputDir)
	assert.Equal(t, map[string]any{"generatePom": "false", "title": "B"}, merged.AdditionalProperties)

	// base is untouched
	assert.Equal(t, "A", base.AdditionalProperties["title"])
	assert.Equal(t, "out", base.OutputDir)
}

func TestMerge_NilProperties(t *testing.T) {
	merged := (&Config{}).Merge(Config{AdditionalProperties: map[string]any{"jackson": true}})
	assert.Equal(t, map[string]any{"jackson": true}, merged.AdditionalProperties)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		needOutput bool
		wantCodes  []string
	}{
		{
			name:       "valid",
			cfg:        Config{Variant: "quarkus", InputSpec: "a.yaml", OutputDir: "out"},
			needOutput: true,
		},
		{
			name:      "unsupported variant",
			cfg:       Config{Variant: "spring", InputSpec: "a.yaml"},
			wantCodes: []string{diagnostic.CodeUnsupportedVariant},
		},
		{
			name:       "missing input and output",
			cfg:        Config{Variant: "jaxrs-spec"},
			needOutput: true,
			wantCodes:  []string{diagnostic.CodeMissingInputSpec, diagnostic.CodeMissingOutputDir},
		},
		{
			name:      "output not needed",
			cfg:       Config{InputSpec: "a.yaml"},
			wantCodes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Validate(&tt.cfg, tt.needOutput)

			var codes []string
			for _, e := range diags.Errors {
				codes = append(codes, e.Code)
			}

			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

func TestValidate_SuggestsVariants(t *testing.T) {
	diags := Validate(&Config{Variant: "spring", InputSpec: "a.yaml"}, false)
	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Suggestions, "helidon")
	require.Error(t, diags.Error())
}

func TestParseProperties(t *testing.T) {
	got, err := ParseProperties([]string{"interfaceOnly=true", "apiPackage=com.x.api, title = My API"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"interfaceOnly": "true",
		"apiPackage":    "com.x.api",
		"title":         "My API",
	}, got)

	empty, err := ParseProperties([]string{"openApiSpecFileLocation="})
	require.NoError(t, err)
	assert.Equal(t, "", empty["openApiSpecFileLocation"])

	_, err = ParseProperties([]string{"novalue"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.InputSpec = "spec.yaml"

	data, err := Marshal(cfg)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
