package plan

import (
	"slices"

	"github.com/edgar1992/openapi-generator/internal/common"
	"github.com/edgar1992/openapi-generator/internal/feature"
	"github.com/edgar1992/openapi-generator/internal/modelmeta"
	"github.com/edgar1992/openapi-generator/internal/naming"
)

// Template identifiers of the fixed artifacts.
const (
	TemplateModel           = "model"
	TemplateAPI             = "api"
	TemplateReadme          = "readme"
	TemplatePom             = "pom"
	TemplateRestApplication = "rest-application"
	TemplateSpec            = "openapi"
)

// Context keys bound on artifacts.
const (
	ContextModel      = "model"
	ContextPackage    = "package"
	ContextClassName  = "classname"
	ContextBaseName   = "baseName"
	ContextOperations = "operations"
)

// ArtifactKind classifies planned artifacts.
type ArtifactKind int

const (
	// KindModel - one per model descriptor.
	KindModel ArtifactKind = iota
	// KindAPI - one per resource group.
	KindAPI
	// KindSupporting - readme, build file, spec copy and variant files.
	KindSupporting
)

// String returns a human-readable kind name.
func (k ArtifactKind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindAPI:
		return "api"
	case KindSupporting:
		return "supporting"
	default:
		return common.UnknownStr
	}
}

// Artifact is one planned output file.
type Artifact struct {
	// Kind of the artifact.
	Kind ArtifactKind
	// TemplateID names the template the renderer executes.
	TemplateID string
	// Folder is relative to the output root, empty for the root itself.
	Folder string
	// FileName is the output file name.
	FileName string
	// WriteIfAbsent asks the writer to keep an existing file untouched.
	WriteIfAbsent bool
	// Context holds the bindings for the template.
	Context map[string]any
}

// OutputPath returns the slash separated path relative to the output root.
func (a Artifact) OutputPath() string {
	return common.JoinPath(a.Folder, a.FileName)
}

// Input gathers everything the planner needs. Features must be resolved
// before Build is called.
type Input struct {
	Groups   []naming.NamedGroup
	Models   []modelmeta.ModelDescriptor
	Features feature.FeatureSet
}

// Manifest is the ordered, immutable list of planned artifacts.
type Manifest struct {
	artifacts []Artifact
}

// Artifacts returns a copy of the planned artifacts in order.
func (m *Manifest) Artifacts() []Artifact {
	if m == nil {
		return nil
	}

	return slices.Clone(m.artifacts)
}

// Len returns the number of planned artifacts.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}

	return len(m.artifacts)
}

// find returns the artifact planned at path.
func (m *Manifest) find(path string) (Artifact, bool) {
	if m == nil {
		return Artifact{}, false
	}

	for _, a := range m.artifacts {
		if a.OutputPath() == path {
			return a, true
		}
	}

	return Artifact{}, false
}

// ByTemplate returns the artifacts rendered with templateID, in order.
func (m *Manifest) ByTemplate(templateID string) []Artifact {
	var out []Artifact

	if m == nil {
		return out
	}

	for _, a := range m.artifacts {
		if a.TemplateID == templateID {
			out = append(out, a)
		}
	}

	return out
}

// Paths returns every output path in order.
func (m *Manifest) Paths() []string {
	if m == nil {
		return nil
	}

	out := make([]string, 0, len(m.artifacts))
	for _, a := range m.artifacts {
		out = append(out, a.OutputPath())
	}

	return out
}
