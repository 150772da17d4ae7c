// Package feature resolves the feature flags of one generation run from the
// selected variant and the caller's overrides.
//
// Resolution precedence, per feature:
//  1. Hard rules of the variant (documentation annotations are always off for
//     managed-container variants).
//  2. Explicit overrides.
//  3. Variant conventions (specification file location).
//  4. Engine defaults.
//
// The resulting FeatureSet has no setters and is final once Resolve returns.
package feature

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/edgar1992/openapi-generator/internal/diagnostic"
	"github.com/edgar1992/openapi-generator/internal/match"
	"github.com/edgar1992/openapi-generator/internal/variant"
)

// Option keys. The first group uses the generator's historical names.
const (
	KeyGeneratePom           = "generatePom"
	KeyInterfaceOnly         = "interfaceOnly"
	KeyReturnResponse        = "returnResponse"
	KeyUseSwaggerAnnotations = "useSwaggerAnnotations"
	KeyJackson               = "jackson"
	KeySpecFileLocation      = "openApiSpecFileLocation"

	KeyArtifactID      = "artifactId"
	KeyGroupID         = "groupId"
	KeyArtifactVersion = "artifactVersion"
	KeyAPIPackage      = "apiPackage"
	KeyModelPackage    = "modelPackage"
	KeyInvokerPackage  = "invokerPackage"
	KeySourceFolder    = "sourceFolder"
	KeyTitle           = "title"
	KeyLibrary         = "library"
)

// aliases maps descriptive option names to their historical key.
var aliases = map[string]string{
	"generateBuildFile":           KeyGeneratePom,
	"returnRawResponse":           KeyReturnResponse,
	"useDocumentationAnnotations": KeyUseSwaggerAnnotations,
	"useJsonBindingAnnotations":   KeyJackson,
	"specificationFileLocation":   KeySpecFileLocation,
}

// Engine defaults.
const (
	DefaultSpecFileLocation = "src/main/openapi/openapi.yaml"
	DefaultServerArtifactID = "openapi-jaxrs-server"
	DefaultClientArtifactID = "openapi-jaxrs-client"
	DefaultGroupID          = "org.openapitools"
	DefaultArtifactVersion  = "1.0.0"
	DefaultAPIPackage       = "org.openapitools.api"
	DefaultModelPackage     = "org.openapitools.model"
	DefaultInvokerPackage   = "org.openapitools.api"
	DefaultSourceFolder     = "src/gen/java"
	DefaultTitle            = "OpenAPI Server"
)

var stringDefaults = map[string]string{
	KeyGroupID:         DefaultGroupID,
	KeyArtifactVersion: DefaultArtifactVersion,
	KeyAPIPackage:      DefaultAPIPackage,
	KeyModelPackage:    DefaultModelPackage,
	KeyInvokerPackage:  DefaultInvokerPackage,
	KeySourceFolder:    DefaultSourceFolder,
	KeyTitle:           DefaultTitle,
}

// FeatureSet is the resolved, read-only configuration of a run.
type FeatureSet struct {
	variant variant.Variant

	generatePom           bool
	interfaceOnly         bool
	returnResponse        bool
	useSwaggerAnnotations bool
	jackson               bool
	specFileLocation      string
	artifactID            string

	strings map[string]string
}

// Resolve derives the FeatureSet for v. Unknown override keys are ignored
// and reported as infos.
func Resolve(v variant.Variant, overrides map[string]any) (FeatureSet, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	opts := canonicalize(overrides, diags)
	profile := v.Profile()

	fs := FeatureSet{
		variant:               v,
		generatePom:           true,
		useSwaggerAnnotations: true,
		specFileLocation:      DefaultSpecFileLocation,
		strings:               maps.Clone(stringDefaults),
	}

	if raw, ok := opts[KeyGeneratePom]; ok {
		fs.generatePom = toBool(raw)
	}

	if raw, ok := opts[KeyInterfaceOnly]; ok {
		fs.interfaceOnly = toBool(raw)
	}

	if raw, ok := opts[KeyReturnResponse]; ok {
		fs.returnResponse = toBool(raw)
	}

	if raw, ok := opts[KeyJackson]; ok {
		fs.jackson = toBool(raw)
	}

	raw, requested := opts[KeyUseSwaggerAnnotations]

	switch {
	case profile.ManagedContainer:
		fs.useSwaggerAnnotations = false

		if requested && toBool(raw) {
			diags.AddWarning(diagnostic.CodeForcedOverride,
				fmt.Sprintf("documentation annotations are always disabled for %s", v), KeyUseSwaggerAnnotations)
		}
	case requested:
		fs.useSwaggerAnnotations = toBool(raw)
	}

	if raw, ok := opts[KeySpecFileLocation]; ok {
		fs.specFileLocation = toString(raw)
	} else if profile.SpecFileLocation != "" {
		fs.specFileLocation = profile.SpecFileLocation
	}

	fs.artifactID = DefaultServerArtifactID
	if fs.interfaceOnly {
		fs.artifactID = DefaultClientArtifactID
	}

	if raw, ok := opts[KeyArtifactID]; ok && toString(raw) != "" {
		fs.artifactID = toString(raw)
	}

	for key := range stringDefaults {
		if raw, ok := opts[key]; ok && toString(raw) != "" {
			fs.strings[key] = toString(raw)
		}
	}

	return fs, diags
}

// canonicalize maps aliases onto historical keys and drops unknown keys.
// Historical keys win over aliases when both are present.
func canonicalize(overrides map[string]any, diags *diagnostic.Diagnostics) map[string]any {
	out := make(map[string]any, len(overrides))

	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		value := overrides[key]

		if canonical, ok := aliases[key]; ok {
			if _, exists := overrides[canonical]; !exists {
				out[canonical] = value
			}

			continue
		}

		if !isKnown(key) {
			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticInfo,
				Code:        diagnostic.CodeUnknownOverride,
				Message:     "override not recognized, ignored",
				Subject:     key,
				Suggestions: match.Closest(key, Keys()),
			})

			continue
		}

		out[key] = value
	}

	return out
}

// Keys returns every recognized option name, aliases included, sorted.
func Keys() []string {
	keys := []string{
		KeyGeneratePom, KeyInterfaceOnly, KeyReturnResponse, KeyUseSwaggerAnnotations,
		KeyJackson, KeySpecFileLocation, KeyArtifactID, KeyLibrary,
	}
	keys = append(keys, slices.Collect(maps.Keys(stringDefaults))...)
	keys = append(keys, slices.Collect(maps.Keys(aliases))...)
	slices.Sort(keys)

	return keys
}

func isKnown(key string) bool {
	switch key {
	case KeyGeneratePom, KeyInterfaceOnly, KeyReturnResponse, KeyUseSwaggerAnnotations,
		KeyJackson, KeySpecFileLocation, KeyArtifactID, KeyLibrary:
		return true
	}

	_, ok := stringDefaults[key]

	return ok
}

// toBool follows Boolean.valueOf semantics: only "true" (any case) is true.
func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case nil:
		return false
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return strings.EqualFold(fmt.Sprint(b), "true")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

// Variant returns the variant the set was resolved for.
func (fs FeatureSet) Variant() variant.Variant { return fs.variant }

// GeneratePom reports whether the build descriptor is planned.
func (fs FeatureSet) GeneratePom() bool { return fs.generatePom }

// InterfaceOnly reports whether only API interfaces are generated.
func (fs FeatureSet) InterfaceOnly() bool { return fs.interfaceOnly }

// ReturnResponse is passed through to templates.
func (fs FeatureSet) ReturnResponse() bool { return fs.returnResponse }

// UseSwaggerAnnotations reports whether documentation annotations are kept.
func (fs FeatureSet) UseSwaggerAnnotations() bool { return fs.useSwaggerAnnotations }

// Jackson reports whether JSON-binding annotations are kept.
func (fs FeatureSet) Jackson() bool { return fs.jackson }

// SpecFileLocation is the output location of the specification copy.
// Empty means no copy is generated.
func (fs FeatureSet) SpecFileLocation() string { return fs.specFileLocation }

// ArtifactID is the published artifact identifier used by the build file.
func (fs FeatureSet) ArtifactID() string { return fs.artifactID }

// GroupID is the published group identifier used by the build file.
func (fs FeatureSet) GroupID() string { return fs.strings[KeyGroupID] }

// ArtifactVersion is the published artifact version.
func (fs FeatureSet) ArtifactVersion() string { return fs.strings[KeyArtifactVersion] }

// APIPackage is the Java package of API interfaces.
func (fs FeatureSet) APIPackage() string { return fs.strings[KeyAPIPackage] }

// ModelPackage is the Java package of models.
func (fs FeatureSet) ModelPackage() string { return fs.strings[KeyModelPackage] }

// InvokerPackage is the Java package of the REST application class.
func (fs FeatureSet) InvokerPackage() string { return fs.strings[KeyInvokerPackage] }

// SourceFolder is the root folder for Java sources.
func (fs FeatureSet) SourceFolder() string { return fs.strings[KeySourceFolder] }

// Title is the application title.
func (fs FeatureSet) Title() string { return fs.strings[KeyTitle] }

// Map returns a fresh copy of every resolved feature, keyed by option name,
// for template lookups. Mutating it does not affect fs.
func (fs FeatureSet) Map() map[string]any {
	out := map[string]any{
		KeyLibrary:               fs.variant.String(),
		KeyGeneratePom:           fs.generatePom,
		KeyInterfaceOnly:         fs.interfaceOnly,
		KeyReturnResponse:        fs.returnResponse,
		KeyUseSwaggerAnnotations: fs.useSwaggerAnnotations,
		KeyJackson:               fs.jackson,
		KeySpecFileLocation:      fs.specFileLocation,
		KeyArtifactID:            fs.artifactID,
	}

	for k, v := range fs.strings {
		out[k] = v
	}

	return out
}
