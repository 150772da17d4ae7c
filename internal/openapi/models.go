package openapi

import (
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/edgar1992/openapi-generator/internal/common"
	"github.com/edgar1992/openapi-generator/internal/modelmeta"
	"github.com/edgar1992/openapi-generator/internal/naming"
)

// Import and annotation markers attached to model descriptors.
const (
	markerAPIModel         = "ApiModel"
	markerAPIModelProperty = "ApiModelProperty"
	markerJSONProperty     = "JsonProperty"
	markerJSONValue        = "JsonValue"
	markerJSONSerialize    = "JsonSerialize"
	markerToString         = "ToStringSerializer"
	markerList             = "List"
	markerMap              = "Map"
	markerLocalDate        = "LocalDate"
	markerDate             = "Date"
	markerBigDecimal       = "BigDecimal"
	markerUUID             = "UUID"
)

const componentSchemaPrefix = "#/components/schemas/"

// Models returns one descriptor per component schema, sorted by schema name.
// Properties keep their declaration order.
func (d *Document) Models() []modelmeta.ModelDescriptor {
	if d.spec.Components == nil || len(d.spec.Components.Schemas) == 0 {
		return nil
	}

	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}

	slices.Sort(names)

	out := make([]modelmeta.ModelDescriptor, 0, len(names))

	for _, name := range names {
		ref := d.spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}

		out = append(out, d.describe(name, ref.Value))
	}

	return out
}

func (d *Document) describe(name string, s *openapi3.Schema) modelmeta.ModelDescriptor {
	m := modelmeta.ModelDescriptor{
		Name:        naming.ModelName(name),
		SchemaName:  name,
		Description: s.Description,
	}

	imports := []string{markerAPIModel}

	if len(s.Enum) > 0 {
		m.IsEnum = true
		for _, v := range s.Enum {
			m.EnumValues = append(m.EnumValues, fmt.Sprint(v))
		}

		imports = append(imports, markerJSONValue, markerJSONSerialize, markerToString)
		m.Imports = common.Dedupe(imports)

		return m
	}

	declared := mappingKeys(d.root, "components", "schemas", name, "properties")
	for _, prop := range propertyOrder(declared, s.Properties) {
		ref := s.Properties[prop]

		dataType, typeImports := javaType(ref)
		imports = append(imports, typeImports...)
		imports = append(imports, markerAPIModelProperty, markerJSONProperty)

		p := modelmeta.Property{
			Name:     naming.LowerFirst(naming.Camelize(naming.Sanitize(prop))),
			BaseName: prop,
			DataType: dataType,
			Required: slices.Contains(s.Required, prop),
		}

		if ref != nil && ref.Value != nil {
			p.Description = ref.Value.Description
		}

		m.Properties = append(m.Properties, p)
	}

	m.Imports = common.Dedupe(imports)

	return m
}

// propertyOrder returns the declared keys first, then any remaining keys
// sorted.
func propertyOrder(declared []string, props openapi3.Schemas) []string {
	out := make([]string, 0, len(props))

	for _, key := range declared {
		if _, ok := props[key]; ok {
			out = append(out, key)
		}
	}

	var rest []string

	for key := range props {
		if !slices.Contains(out, key) {
			rest = append(rest, key)
		}
	}

	slices.Sort(rest)

	return append(out, rest...)
}

// javaType maps a schema onto a Java type name and the markers that type
// needs.
func javaType(ref *openapi3.SchemaRef) (string, []string) {
	if ref == nil {
		return "Object", nil
	}

	if strings.HasPrefix(ref.Ref, componentSchemaPrefix) {
		return naming.ModelName(strings.TrimPrefix(ref.Ref, componentSchemaPrefix)), nil
	}

	s := ref.Value
	if s == nil {
		return "Object", nil
	}

	switch schemaType(s) {
	case openapi3.TypeString:
		switch s.Format {
		case "date":
			return "LocalDate", []string{markerLocalDate}
		case "date-time":
			return "Date", []string{markerDate}
		case "uuid":
			return "UUID", []string{markerUUID}
		case "byte", "binary":
			return "byte[]", nil
		}

		return "String", nil
	case openapi3.TypeInteger:
		if s.Format == "int64" {
			return "Long", nil
		}

		return "Integer", nil
	case openapi3.TypeNumber:
		switch s.Format {
		case "float":
			return "Float", nil
		case "double":
			return "Double", nil
		}

		return "BigDecimal", []string{markerBigDecimal}
	case openapi3.TypeBoolean:
		return "Boolean", nil
	case openapi3.TypeArray:
		inner, imports := javaType(s.Items)
		return "List<" + inner + ">", append(imports, markerList)
	case openapi3.TypeObject:
		if s.AdditionalProperties.Schema != nil {
			inner, imports := javaType(s.AdditionalProperties.Schema)
			return "Map<String, " + inner + ">", append(imports, markerMap)
		}
	}

	return "Object", nil
}

// schemaType returns the single declared type, empty when none or several.
func schemaType(s *openapi3.Schema) string {
	if s.Type == nil || len(*s.Type) != 1 {
		return ""
	}

	return (*s.Type)[0]
}
