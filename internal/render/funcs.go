package render

import (
	"strings"
	"text/template"

	"github.com/edgar1992/openapi-generator/internal/grouping"
	"github.com/edgar1992/openapi-generator/internal/naming"
)

// qualifiedImports maps model markers onto Java imports.
var qualifiedImports = map[string]string{
	"ApiModel":           "io.swagger.annotations.ApiModel",
	"ApiModelProperty":   "io.swagger.annotations.ApiModelProperty",
	"JsonProperty":       "com.fasterxml.jackson.annotation.JsonProperty",
	"JsonValue":          "com.fasterxml.jackson.annotation.JsonValue",
	"JsonSerialize":      "com.fasterxml.jackson.databind.annotation.JsonSerialize",
	"ToStringSerializer": "com.fasterxml.jackson.databind.ser.std.ToStringSerializer",
	"List":               "java.util.List",
	"Map":                "java.util.Map",
	"LocalDate":          "java.time.LocalDate",
	"Date":               "java.util.Date",
	"BigDecimal":         "java.math.BigDecimal",
	"UUID":               "java.util.UUID",
}

// jaxrsMethods have a dedicated JAX-RS annotation.
var jaxrsMethods = map[string]bool{
	"GET": true, "HEAD": true, "PUT": true, "POST": true,
	"DELETE": true, "PATCH": true, "OPTIONS": true,
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"importOf":      importOf,
		"httpMethod":    httpMethod,
		"operationName": operationName,
		"resourcePath":  resourcePath,
		"javaString":    javaString,
		"enumConstant":  enumConstant,
		"upperFirst":    naming.UpperFirst,
	}
}

// importOf returns the fully qualified import of marker, empty when the
// marker does not need one.
func importOf(marker string) string {
	return qualifiedImports[marker]
}

// httpMethod returns the annotation for method without the leading "@".
func httpMethod(method string) string {
	if jaxrsMethods[method] {
		return method
	}

	return `HttpMethod("` + method + `")`
}

// operationName returns the Java method name of op: the operation id, or
// the lower-cased method followed by the camelized path.
func operationName(op grouping.GroupedOperation) string {
	if op.Operation.OperationID != "" {
		return naming.LowerFirst(naming.Camelize(naming.Sanitize(op.Operation.OperationID)))
	}

	path := strings.NewReplacer("{", "", "}", "").Replace(op.Operation.Path)

	return strings.ToLower(op.Operation.Method) + naming.Camelize(naming.Sanitize(path))
}

// resourcePath returns the class level path for a group base name.
func resourcePath(base string) string {
	return "/" + strings.Trim(base, "/")
}

// javaString escapes s for a Java string literal.
func javaString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s)
}

// enumConstant turns an enum value into a constant name.
func enumConstant(v string) string {
	s := strings.ToUpper(naming.Sanitize(v))
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		s = "_" + s
	}

	return s
}

