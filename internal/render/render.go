// Package render executes the templates of a planned manifest.
//
// Templates are embedded in the binary and addressed by the template
// identifiers the planner and the variant catalog use. The specification
// copy is not templated: its content is the re-encoded input document.
package render

import (
	"bytes"
	"embed"
	"io/fs"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/edgar1992/openapi-generator/internal/feature"
	"github.com/edgar1992/openapi-generator/internal/grouping"
	"github.com/edgar1992/openapi-generator/internal/modelmeta"
	"github.com/edgar1992/openapi-generator/internal/plan"
)

//go:embed templates
var templateFS embed.FS

const templateExt = ".tmpl"

var (
	// ErrUnknownTemplate is returned for template identifiers with no template.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrMissingSpecification is returned when a copy is planned but no
	// document content was given.
	ErrMissingSpecification = errors.New("specification content missing")
)

// File is one rendered output file.
type File struct {
	// Path is slash separated and relative to the output root.
	Path string
	// Content is the rendered file content.
	Content []byte
	// WriteIfAbsent asks the writer to keep an existing file untouched.
	WriteIfAbsent bool
}

// Renderer holds the parsed template set.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every embedded template.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, templateExt) {
			return err
		}

		data, err := templateFS.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading template %s", path)
		}

		id := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), templateExt)

		tmpl, err := template.New(id).Funcs(funcMap()).Parse(string(data))
		if err != nil {
			return errors.Wrapf(err, "parsing template %s", id)
		}

		r.templates[id] = tmpl

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Has reports whether a template exists for id.
func (r *Renderer) Has(id string) bool {
	_, ok := r.templates[id]
	return ok
}

// Render produces one file per artifact of m, in manifest order.
// spec is the content of the specification copy.
func (r *Renderer) Render(m *plan.Manifest, fset feature.FeatureSet, spec []byte) ([]File, error) {
	if copies := m.ByTemplate(plan.TemplateSpec); spec == nil && len(copies) > 0 {
		return nil, errors.Wrapf(ErrMissingSpecification, "rendering %s", copies[0].OutputPath())
	}

	for _, a := range m.Artifacts() {
		if a.TemplateID != plan.TemplateSpec && !r.Has(a.TemplateID) {
			return nil, errors.Wrapf(ErrUnknownTemplate, "%s: %q", a.OutputPath(), a.TemplateID)
		}
	}

	features := fset.Map()
	summary := summarize(m)

	files := make([]File, 0, m.Len())

	for _, a := range m.Artifacts() {
		content, err := r.renderArtifact(a, features, summary, spec)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering %s", a.OutputPath())
		}

		files = append(files, File{
			Path:          a.OutputPath(),
			Content:       content,
			WriteIfAbsent: a.WriteIfAbsent,
		})
	}

	return files, nil
}

func (r *Renderer) renderArtifact(a plan.Artifact, features map[string]any, summary projectSummary, spec []byte) ([]byte, error) {
	if a.TemplateID == plan.TemplateSpec {
		return spec, nil
	}

	tmpl, ok := r.templates[a.TemplateID]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTemplate, "%q", a.TemplateID)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(a, features, summary)); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	return buf.Bytes(), nil
}

// templateData is what every template sees.
type templateData struct {
	Features   map[string]any
	Package    string
	ClassName  string
	BaseName   string
	Model      modelmeta.ModelDescriptor
	Operations []grouping.GroupedOperation
	Project    projectSummary
}

// projectSummary lists the generated classes for supporting files.
type projectSummary struct {
	APIs   []string
	Models []string
}

func newTemplateData(a plan.Artifact, features map[string]any, summary projectSummary) templateData {
	data := templateData{Features: features, Project: summary}

	if v, ok := a.Context[plan.ContextPackage].(string); ok {
		data.Package = v
	}

	if v, ok := a.Context[plan.ContextClassName].(string); ok {
		data.ClassName = v
	}

	if v, ok := a.Context[plan.ContextBaseName].(string); ok {
		data.BaseName = v
	}

	if v, ok := a.Context[plan.ContextModel].(modelmeta.ModelDescriptor); ok {
		data.Model = v
		data.ClassName = v.Name
	}

	if v, ok := a.Context[plan.ContextOperations].([]grouping.GroupedOperation); ok {
		data.Operations = v
	}

	return data
}

func summarize(m *plan.Manifest) projectSummary {
	var s projectSummary

	for _, a := range m.Artifacts() {
		switch a.Kind {
		case plan.KindAPI:
			s.APIs = append(s.APIs, strings.TrimSuffix(a.FileName, ".java"))
		case plan.KindModel:
			s.Models = append(s.Models, strings.TrimSuffix(a.FileName, ".java"))
		}
	}

	return s
}
