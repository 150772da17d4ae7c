// Package modelmeta prunes import and annotation markers of generated models
// according to the resolved features.
package modelmeta

import (
	"slices"

	"github.com/edgar1992/openapi-generator/internal/common"
	"github.com/edgar1992/openapi-generator/internal/feature"
)

// Family is a group of markers enabled or disabled by one feature.
type Family []string

// Marker families.
var (
	// Documentation annotations, kept when useSwaggerAnnotations is on.
	Documentation = Family{"ApiModel", "ApiModelProperty"}
	// JSONBinding annotations, kept when jackson is on.
	JSONBinding = Family{"JsonSerialize", "ToStringSerializer", "JsonValue", "JsonProperty"}
)

// Property is one model property as seen by templates.
type Property struct {
	Name        string
	BaseName    string
	DataType    string
	Description string
	Required    bool
}

// ModelDescriptor is the metadata of one generated model.
type ModelDescriptor struct {
	// Name is the class name.
	Name string
	// SchemaName is the name declared by the specification.
	SchemaName string
	// Description is the schema description.
	Description string
	// Imports are the import and annotation markers, with set semantics.
	Imports []string
	// Properties in declaration order.
	Properties []Property
	// IsEnum is true for enum schemas.
	IsEnum bool
	// EnumValues lists the allowed values of an enum schema.
	EnumValues []string
}

// HasImport reports whether marker is present.
func (d ModelDescriptor) HasImport(marker string) bool {
	return slices.Contains(d.Imports, marker)
}

// Without returns a copy of d with the markers of f removed.
// Absent markers are ignored.
func (d ModelDescriptor) Without(f Family) ModelDescriptor {
	out := d
	out.Imports = make([]string, 0, len(d.Imports))

	for _, marker := range common.Dedupe(d.Imports) {
		if !slices.Contains(f, marker) {
			out.Imports = append(out.Imports, marker)
		}
	}

	out.Properties = slices.Clone(d.Properties)
	out.EnumValues = slices.Clone(d.EnumValues)

	return out
}

// Filter returns a copy of d with the markers of every disabled family
// removed. Applying it twice yields the same result as applying it once.
func Filter(d ModelDescriptor, fs feature.FeatureSet) ModelDescriptor {
	out := d.Without(nil)

	if !fs.UseSwaggerAnnotations() {
		out = out.Without(Documentation)
	}

	if !fs.Jackson() {
		out = out.Without(JSONBinding)
	}

	return out
}

// FilterAll filters every descriptor, preserving order.
func FilterAll(models []ModelDescriptor, fs feature.FeatureSet) []ModelDescriptor {
	out := make([]ModelDescriptor, 0, len(models))
	for _, m := range models {
		out = append(out, Filter(m, fs))
	}

	return out
}
