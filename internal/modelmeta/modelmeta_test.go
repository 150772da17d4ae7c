package modelmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgar1992/openapi-generator/internal/feature"
	"github.com/edgar1992/openapi-generator/internal/variant"
)

func typeHolder() ModelDescriptor {
	return ModelDescriptor{
		Name:       "TypeHolderExample",
		SchemaName: "TypeHolderExample",
		Imports: []string{
			"ApiModel", "ApiModelProperty", "BigDecimal", "JsonProperty",
			"JsonValue", "List", "ToStringSerializer", "JsonSerialize",
		},
		Properties: []Property{
			{Name: "stringItem", BaseName: "string_item", DataType: "String", Required: true},
			{Name: "arrayItem", BaseName: "array_item", DataType: "List<Integer>", Required: true},
		},
	}
}

func resolve(t *testing.T, v variant.Variant, overrides map[string]any) feature.FeatureSet {
	t.Helper()

	fs, diags := feature.Resolve(v, overrides)
	require.True(t, diags.IsValid())

	return fs
}

func TestFilter_Families(t *testing.T) {
	tests := []struct {
		name      string
		variant   variant.Variant
		overrides map[string]any
		want      []string
	}{
		{
			name:    "defaults keep documentation, drop json binding",
			variant: variant.Default,
			want:    []string{"ApiModel", "ApiModelProperty", "BigDecimal", "List"},
		},
		{
			name:      "jackson keeps json binding",
			variant:   variant.Default,
			overrides: map[string]any{feature.KeyJackson: true},
			want: []string{
				"ApiModel", "ApiModelProperty", "BigDecimal", "JsonProperty",
				"JsonValue", "List", "ToStringSerializer", "JsonSerialize",
			},
		},
		{
			name:      "documentation disabled",
			variant:   variant.Default,
			overrides: map[string]any{feature.KeyUseSwaggerAnnotations: false, feature.KeyJackson: true},
			want: []string{
				"BigDecimal", "JsonProperty", "JsonValue", "List", "ToStringSerializer", "JsonSerialize",
			},
		},
		{
			name:    "managed container drops both",
			variant: variant.Quarkus,
			want:    []string{"BigDecimal", "List"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := resolve(t, tt.variant, tt.overrides)
			got := Filter(typeHolder(), fs)
			assert.Equal(t, tt.want, got.Imports)
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	for _, v := range variant.All() {
		t.Run(v.String(), func(t *testing.T) {
			fs := resolve(t, v, nil)

			once := Filter(typeHolder(), fs)
			twice := Filter(once, fs)

			assert.Equal(t, once, twice)
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := typeHolder()
	fs := resolve(t, variant.Helidon, nil)

	out := Filter(in, fs)
	out.Properties[0].Name = "changed"

	assert.Equal(t, typeHolder(), in)
	assert.True(t, in.HasImport("ApiModel"))
	assert.False(t, out.HasImport("ApiModel"))
}

func TestFilter_AbsentMarkersAreNoOp(t *testing.T) {
	fs := resolve(t, variant.Quarkus, nil)

	got := Filter(ModelDescriptor{Name: "Empty"}, fs)
	assert.Empty(t, got.Imports)

	got = Filter(ModelDescriptor{Name: "Dup", Imports: []string{"List", "List", "Map"}}, fs)
	assert.Equal(t, []string{"List", "Map"}, got.Imports)
}

func TestFilterAll_PreservesOrder(t *testing.T) {
	fs := resolve(t, variant.Default, nil)

	models := []ModelDescriptor{{Name: "B"}, {Name: "A"}, {Name: "C"}}
	got := FilterAll(models, fs)

	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
	assert.Equal(t, "C", got[2].Name)
}
