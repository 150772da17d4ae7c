package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgar1992/openapi-generator/internal/diagnostic"
	"github.com/edgar1992/openapi-generator/internal/variant"
)

func TestResolve_Defaults(t *testing.T) {
	fs, diags := Resolve(variant.Default, nil)
	require.NotNil(t, diags)
	assert.Empty(t, diags.All())

	assert.Equal(t, variant.Default, fs.Variant())
	assert.True(t, fs.GeneratePom())
	assert.False(t, fs.InterfaceOnly())
	assert.False(t, fs.ReturnResponse())
	assert.True(t, fs.UseSwaggerAnnotations())
	assert.False(t, fs.Jackson())
	assert.Equal(t, DefaultSpecFileLocation, fs.SpecFileLocation())
	assert.Equal(t, DefaultServerArtifactID, fs.ArtifactID())
	assert.Equal(t, DefaultGroupID, fs.GroupID())
	assert.Equal(t, DefaultArtifactVersion, fs.ArtifactVersion())
	assert.Equal(t, DefaultAPIPackage, fs.APIPackage())
	assert.Equal(t, DefaultModelPackage, fs.ModelPackage())
	assert.Equal(t, DefaultInvokerPackage, fs.InvokerPackage())
	assert.Equal(t, DefaultSourceFolder, fs.SourceFolder())
	assert.Equal(t, DefaultTitle, fs.Title())
}

func TestResolve_ManagedContainerForcesAnnotationsOff(t *testing.T) {
	managed := []variant.Variant{variant.Quarkus, variant.Thorntail, variant.OpenLiberty, variant.Helidon}

	for _, v := range managed {
		t.Run(v.String(), func(t *testing.T) {
			fs, diags := Resolve(v, map[string]any{KeyUseSwaggerAnnotations: true})
			assert.False(t, fs.UseSwaggerAnnotations())
			assert.Len(t, diags.WithCode(diagnostic.CodeForcedOverride), 1)

			fs, _ = Resolve(v, map[string]any{"useDocumentationAnnotations": "true"})
			assert.False(t, fs.UseSwaggerAnnotations())

			fs, diags = Resolve(v, nil)
			assert.False(t, fs.UseSwaggerAnnotations())
			assert.Empty(t, diags.WithCode(diagnostic.CodeForcedOverride))
		})
	}
}

func TestResolve_DefaultVariantHonorsAnnotationOverride(t *testing.T) {
	fs, _ := Resolve(variant.Default, map[string]any{KeyUseSwaggerAnnotations: "false"})
	assert.False(t, fs.UseSwaggerAnnotations())

	fs, _ = Resolve(variant.Default, map[string]any{"useDocumentationAnnotations": false})
	assert.False(t, fs.UseSwaggerAnnotations())

	fs, _ = Resolve(variant.Default, map[string]any{KeyUseSwaggerAnnotations: "TRUE"})
	assert.True(t, fs.UseSwaggerAnnotations())
}

func TestResolve_SpecFileLocationPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		variant   variant.Variant
		overrides map[string]any
		want      string
	}{
		{"engine default", variant.Default, nil, DefaultSpecFileLocation},
		{"quarkus convention", variant.Quarkus, nil, "src/main/resources/META-INF/openapi.yaml"},
		{"thorntail convention", variant.Thorntail, nil, "src/main/resources/META-INF/openapi.yaml"},
		{"helidon convention", variant.Helidon, nil, "src/main/resources/META-INF/openapi.yaml"},
		{"openliberty convention", variant.OpenLiberty, nil, "src/main/webapp/META-INF/openapi.yaml"},
		{
			"explicit beats convention", variant.Quarkus,
			map[string]any{KeySpecFileLocation: "a/b/spec.yaml"}, "a/b/spec.yaml",
		},
		{
			"explicit empty disables", variant.OpenLiberty,
			map[string]any{KeySpecFileLocation: ""}, "",
		},
		{
			"alias", variant.Default,
			map[string]any{"specificationFileLocation": "api.yaml"}, "api.yaml",
		},
		{
			"nil disables", variant.Default,
			map[string]any{KeySpecFileLocation: nil}, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _ := Resolve(tt.variant, tt.overrides)
			assert.Equal(t, tt.want, fs.SpecFileLocation())
		})
	}
}

func TestResolve_InterfaceOnlyChangesArtifactID(t *testing.T) {
	fs, _ := Resolve(variant.Default, map[string]any{KeyInterfaceOnly: "true", KeyReturnResponse: true})
	assert.True(t, fs.InterfaceOnly())
	assert.True(t, fs.ReturnResponse())
	assert.Equal(t, DefaultClientArtifactID, fs.ArtifactID())

	fs, _ = Resolve(variant.Default, map[string]any{KeyInterfaceOnly: true, KeyArtifactID: "petstore"})
	assert.Equal(t, "petstore", fs.ArtifactID())
}

func TestResolve_BooleanParsing(t *testing.T) {
	tests := []struct {
		raw  any
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"True", true},
		{" true ", true},
		{"yes", false},
		{"1", false},
		{1, false},
		{nil, false},
	}

	for _, tt := range tests {
		fs, _ := Resolve(variant.Default, map[string]any{KeyGeneratePom: tt.raw})
		assert.Equal(t, tt.want, fs.GeneratePom(), "raw=%v", tt.raw)
	}
}

func TestResolve_UnknownOverridesIgnored(t *testing.T) {
	fs, diags := Resolve(variant.Default, map[string]any{
		"dateLibrary": "java8",
		"zzz":         1,
		KeyJackson:    "true",
	})

	assert.True(t, fs.Jackson())
	unknown := diags.WithCode(diagnostic.CodeUnknownOverride)
	require.Len(t, unknown, 2)
	assert.Equal(t, "dateLibrary", unknown[0].Subject)
	assert.Equal(t, "zzz", unknown[1].Subject)
	assert.Empty(t, unknown[1].Suggestions)
	assert.True(t, diags.IsValid())
}

func TestResolve_UnknownOverrideSuggestsKey(t *testing.T) {
	fs, diags := Resolve(variant.Default, map[string]any{"interface-only": true})

	assert.False(t, fs.InterfaceOnly())

	unknown := diags.WithCode(diagnostic.CodeUnknownOverride)
	require.Len(t, unknown, 1)
	assert.Equal(t, []string{KeyInterfaceOnly}, unknown[0].Suggestions)
}

func TestKeys(t *testing.T) {
	keys := Keys()

	assert.Contains(t, keys, KeyGeneratePom)
	assert.Contains(t, keys, KeyTitle)
	assert.Contains(t, keys, "generateBuildFile")
	assert.IsIncreasing(t, keys)
}

func TestResolve_CanonicalKeyWinsOverAlias(t *testing.T) {
	fs, _ := Resolve(variant.Default, map[string]any{
		KeyGeneratePom:      false,
		"generateBuildFile": true,
	})
	assert.False(t, fs.GeneratePom())
}

func TestResolve_StringOverrides(t *testing.T) {
	fs, _ := Resolve(variant.Default, map[string]any{
		KeyAPIPackage:   "com.example.api",
		KeyModelPackage: "com.example.model",
		KeySourceFolder: "",
		KeyGroupID:      "com.example",
	})

	assert.Equal(t, "com.example.api", fs.APIPackage())
	assert.Equal(t, "com.example.model", fs.ModelPackage())
	assert.Equal(t, DefaultSourceFolder, fs.SourceFolder())
	assert.Equal(t, "com.example", fs.GroupID())
}

func TestFeatureSet_MapIsACopy(t *testing.T) {
	fs, _ := Resolve(variant.Helidon, nil)

	m := fs.Map()
	assert.Equal(t, "helidon", m[KeyLibrary])
	assert.Equal(t, false, m[KeyUseSwaggerAnnotations])
	assert.Equal(t, DefaultAPIPackage, m[KeyAPIPackage])

	m[KeyAPIPackage] = "changed"
	m[KeyGeneratePom] = false

	assert.Equal(t, DefaultAPIPackage, fs.APIPackage())
	assert.True(t, fs.GeneratePom())
}
