package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/edgar1992/openapi-generator/internal/config"
	"github.com/edgar1992/openapi-generator/internal/logger"
	"github.com/edgar1992/openapi-generator/internal/plan"
	"github.com/edgar1992/openapi-generator/internal/writer"
)

const petstore = `openapi: 3.0.3
info:
  title: Petstore
  version: 2.1.0
paths:
  /pets:
    get:
      tags: [pet]
      operationId: listPets
      responses:
        "200":
          description: ok
  /pets/{id}:
    get:
      tags: [pet]
      operationId: getPet
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
`

func writeSpec(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstore), 0o644))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func executeSplit(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	cmd := newRootCmd()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestVariantsCommand(t *testing.T) {
	out, err := execute(t, "variants")
	require.NoError(t, err)

	for _, name := range []string{"jaxrs-spec", "quarkus", "thorntail", "openliberty", "helidon"} {
		assert.Contains(t, out, name)
	}

	assert.Contains(t, out, "src/main/webapp/META-INF/openapi.yaml")
}

func TestPlanCommand_YAML(t *testing.T) {
	spec := writeSpec(t)

	out, err := execute(t, "plan", "-i", spec, "--variant", "helidon", "-p", "interfaceOnly=true", "--format", "yaml")
	require.NoError(t, err)

	var em plan.ExportedManifest
	require.NoError(t, yaml.Unmarshal([]byte(out), &em))

	var paths []string
	for _, a := range em.Artifacts {
		paths = append(paths, a.Path)
	}

	assert.Contains(t, paths, "src/gen/java/org/openapitools/model/Pet.java")
	assert.Contains(t, paths, "src/gen/java/org/openapitools/api/PetsApi.java")
	assert.Contains(t, paths, "src/main/resources/META-INF/openapi.yaml")
	assert.NotContains(t, paths, "src/gen/java/org/openapitools/api/RestApplication.java")
}

func TestPlanCommand_YAMLWithWarnings(t *testing.T) {
	stdout, stderr, err := executeSplit(t, "plan", "-i", writeSpec(t),
		"--variant", "quarkus", "-p", "useSwaggerAnnotations=true", "--format", "yaml")
	require.NoError(t, err)

	var em plan.ExportedManifest
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &em))
	assert.Equal(t, "1", em.Version)
	assert.NotContains(t, stdout, "forced_override")

	assert.Contains(t, stderr, "forced_override")
	assert.Contains(t, stderr, "useSwaggerAnnotations")
}

func TestPlanCommand_Table(t *testing.T) {
	out, err := execute(t, "plan", "-i", writeSpec(t))
	require.NoError(t, err)

	assert.Contains(t, out, "PetsApi.java")
	assert.Contains(t, out, "rest-application")
}

func TestPlanCommand_EnvVariant(t *testing.T) {
	t.Setenv("OPENAPI_GENERATOR_VARIANT", "quarkus")

	out, err := execute(t, "plan", "-i", writeSpec(t), "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "src/main/docker/Dockerfile.jvm")
}

func TestPlanCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "plan", "-i", writeSpec(t), "--format", "xml")
	require.Error(t, err)
}

func TestPlanCommand_UnsupportedVariant(t *testing.T) {
	_, err := execute(t, "plan", "-i", writeSpec(t), "--variant", "spring")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
	assert.Contains(t, errors.FlattenHints(err), "quarkus")
}

func TestPlanCommand_MissingInput(t *testing.T) {
	_, err := execute(t, "plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing_input_spec")
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("OPENAPI_GENERATOR_VARIANT", "helidon")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("variant: quarkus\nadditionalProperties:\n  title: Pets\n"), 0o644))

	out, err := execute(t, "config", "-c", cfgPath, "-i", "petstore.yaml", "-p", "interfaceOnly=true")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "helidon", cfg.Variant)
	assert.Equal(t, "petstore.yaml", cfg.InputSpec)
	assert.Equal(t, "Pets", cfg.AdditionalProperties["title"])
	assert.Equal(t, "true", cfg.AdditionalProperties["interfaceOnly"])
}

func TestGenerateCommand(t *testing.T) {
	spec := writeSpec(t)
	outDir := filepath.Join(t.TempDir(), "project")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "variant: openliberty\nadditionalProperties:\n  artifactId: petstore\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, err := execute(t, "generate", "-c", cfgPath, "-i", spec, "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "written")

	pom, err := os.ReadFile(filepath.Join(outDir, "pom.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(pom), "<artifactId>petstore</artifactId>")
	assert.Contains(t, string(pom), "<version>2.1.0</version>")
	assert.Contains(t, string(pom), "<description>Petstore</description>")

	copied, err := os.ReadFile(filepath.Join(outDir, "src/main/webapp/META-INF/openapi.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(copied), "listPets")

	assert.FileExists(t, filepath.Join(outDir, "src/main/liberty/config/server.xml"))
	assert.FileExists(t, filepath.Join(outDir, writer.MetadataDir, "FILES"))

	// a second run keeps edited write-if-absent files
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "pom.xml"), []byte("edited"), 0o644))

	_, err = execute(t, "generate", "-c", cfgPath, "-i", spec, "-o", outDir)
	require.NoError(t, err)

	pom, err = os.ReadFile(filepath.Join(outDir, "pom.xml"))
	require.NoError(t, err)
	assert.Equal(t, "edited", string(pom))
}

func TestGenerateCommand_DryRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "project")

	_, err := execute(t, "generate", "-i", writeSpec(t), "-o", outDir, "--dry-run")
	require.NoError(t, err)
	assert.NoDirExists(t, outDir)
}

func TestReportError(t *testing.T) {
	var out bytes.Buffer

	reportError(&out, errors.WithHint(errors.New("boom"), "try again"))

	assert.Equal(t, "Error: boom\nHint: try again\n", out.String())
}

func TestReportError_JSON(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger.Use(zap.New(core))
	logger.JSONOutput = true

	t.Cleanup(func() {
		logger.Use(nil)
		logger.JSONOutput = false
	})

	var out bytes.Buffer

	reportError(&out, errors.WithHint(errors.New("boom"), "try again"))

	assert.Empty(t, out.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	assert.Equal(t, "try again", logs.All()[0].ContextMap()["hint"])
}
