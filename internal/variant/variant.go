// Package variant holds the closed catalog of library variants supported by
// the JAX-RS spec generator and the configuration record each one implies.
//
// The catalog is a read-only table built at package load. Callers resolve a
// user-supplied name once with Lookup and carry the typed Variant from there
// on; no other package compares variant names.
package variant

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/edgar1992/openapi-generator/internal/common"
	"github.com/edgar1992/openapi-generator/internal/match"
)

// ErrUnsupportedVariant is returned by Lookup for names outside the catalog.
var ErrUnsupportedVariant = errors.New("unsupported library variant")

// Variant identifies one library variant.
type Variant string

const (
	// Default is plain JAX-RS spec, deployed to an application server.
	Default Variant = "jaxrs-spec"
	// Quarkus targets a Quarkus server.
	Quarkus Variant = "quarkus"
	// Thorntail targets a Thorntail server.
	Thorntail Variant = "thorntail"
	// OpenLiberty targets an Open Liberty server.
	OpenLiberty Variant = "openliberty"
	// Helidon targets a Helidon server.
	Helidon Variant = "helidon"
)

// Conventional specification file locations.
const (
	resourcesMetaInfSpec = "src/main/resources/META-INF/openapi.yaml"
	webappMetaInfSpec    = "src/main/webapp/META-INF/openapi.yaml"
)

// SupportingFile is a variant specific file emitted next to the sources.
type SupportingFile struct {
	// TemplateID names the template the renderer executes.
	TemplateID string
	// Folder is the output folder relative to the output root.
	Folder string
	// FileName is the output file name.
	FileName string
}

// Profile is the configuration record associated with a variant.
type Profile struct {
	// Description is a one-line summary shown by the CLI.
	Description string
	// ManagedContainer is true when the target runtime generates API
	// documentation metadata on its own.
	ManagedContainer bool
	// SpecFileLocation is the conventional location of the specification
	// copy, empty when the engine default applies.
	SpecFileLocation string
	// SupportingFiles are emitted write-if-absent, in order.
	SupportingFiles []SupportingFile
}

var catalog = []struct {
	variant Variant
	profile Profile
}{
	{
		variant: Default,
		profile: Profile{
			Description: "JAXRS spec only, to be deployed in an app server (TomEE, JBoss, WLS, ...)",
		},
	},
	{
		variant: Quarkus,
		profile: Profile{
			Description:      "Server using Quarkus",
			ManagedContainer: true,
			SpecFileLocation: resourcesMetaInfSpec,
			SupportingFiles: []SupportingFile{
				{TemplateID: "quarkus/application.properties", Folder: "src/main/resources", FileName: "application.properties"},
				{TemplateID: "quarkus/Dockerfile.jvm", Folder: "src/main/docker", FileName: "Dockerfile.jvm"},
				{TemplateID: "quarkus/Dockerfile.native", Folder: "src/main/docker", FileName: "Dockerfile.native"},
				{TemplateID: "quarkus/dockerignore", Folder: "", FileName: ".dockerignore"},
			},
		},
	},
	{
		variant: Thorntail,
		profile: Profile{
			Description:      "Server using Thorntail",
			ManagedContainer: true,
			SpecFileLocation: resourcesMetaInfSpec,
		},
	},
	{
		variant: OpenLiberty,
		profile: Profile{
			Description:      "Server using Open Liberty",
			ManagedContainer: true,
			SpecFileLocation: webappMetaInfSpec,
			SupportingFiles: []SupportingFile{
				{TemplateID: "openliberty/server.xml", Folder: "src/main/liberty/config", FileName: "server.xml"},
				{TemplateID: "openliberty/beans.xml", Folder: "src/main/webapp/META-INF", FileName: "beans.xml"},
				{TemplateID: "openliberty/MANIFEST.MF", Folder: "src/main/webapp/META-INF", FileName: "MANIFEST.MF"},
				{
					TemplateID: "openliberty/microprofile-config.properties",
					Folder:     "src/main/webapp/META-INF",
					FileName:   "microprofile-config.properties",
				},
				{TemplateID: "openliberty/ibm-web-ext.xml", Folder: "src/main/webapp/WEB-INF", FileName: "ibm-web-ext.xml"},
			},
		},
	},
	{
		variant: Helidon,
		profile: Profile{
			Description:      "Server using Helidon",
			ManagedContainer: true,
			SpecFileLocation: resourcesMetaInfSpec,
			SupportingFiles: []SupportingFile{
				{TemplateID: "helidon/logging.properties", Folder: "src/main/resources", FileName: "logging.properties"},
				{
					TemplateID: "helidon/microprofile-config.properties",
					Folder:     "src/main/resources/META-INF",
					FileName:   "microprofile-config.properties",
				},
				{TemplateID: "helidon/beans.xml", Folder: "src/main/webapp/META-INF", FileName: "beans.xml"},
			},
		},
	},
}

// Lookup resolves a variant name. An empty name selects Default.
// Names are matched exactly; the closed set is lower case.
func Lookup(name string) (Variant, error) {
	if name == "" {
		return Default, nil
	}

	for _, entry := range catalog {
		if string(entry.variant) == name {
			return entry.variant, nil
		}
	}

	err := errors.Wrapf(ErrUnsupportedVariant, "%q", name)
	if similar := Suggest(name); len(similar) > 0 {
		err = errors.WithHintf(err, "did you mean %s?", strings.Join(similar, " or "))
	}

	return "", errors.WithHintf(err, "supported variants: %s", strings.Join(Names(), ", "))
}

// Suggest returns the catalog names closest to a misspelled name.
func Suggest(name string) []string {
	return match.Closest(name, Names())
}

// All returns the catalog in its stable order.
func All() []Variant {
	out := make([]Variant, 0, len(catalog))
	for _, entry := range catalog {
		out = append(out, entry.variant)
	}

	return out
}

// Names returns the catalog names in order.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		out = append(out, string(entry.variant))
	}

	return out
}

// Valid reports whether v belongs to the catalog.
func (v Variant) Valid() bool {
	for _, entry := range catalog {
		if entry.variant == v {
			return true
		}
	}

	return false
}

// Profile returns the configuration record for v.
// The returned SupportingFiles slice is a copy.
func (v Variant) Profile() Profile {
	for _, entry := range catalog {
		if entry.variant == v {
			p := entry.profile
			p.SupportingFiles = append([]SupportingFile(nil), entry.profile.SupportingFiles...)

			return p
		}
	}

	return Profile{Description: common.UnknownStr}
}

// String returns the variant name.
func (v Variant) String() string {
	return string(v)
}
