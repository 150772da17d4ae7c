package plan

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/edgar1992/openapi-generator/internal/common"
	"github.com/edgar1992/openapi-generator/internal/feature"
)

var (
	// ErrDuplicateArtifact is returned when two artifacts share an output path.
	ErrDuplicateArtifact = errors.New("duplicate artifact output path")
	// ErrOutsideOutput is returned for artifact paths that are absolute or
	// climb above the output root.
	ErrOutsideOutput = errors.New("artifact path outside output directory")
)

const javaExt = ".java"

// Build assembles the manifest for in. It has no side effects: existence
// checks for write-if-absent artifacts belong to the writer.
func Build(in Input) (*Manifest, error) {
	fs := in.Features
	b := &builder{seen: make(map[string]struct{})}

	modelDir := common.JoinPath(fs.SourceFolder(), common.PackageDir(fs.ModelPackage()))
	for _, m := range in.Models {
		b.add(Artifact{
			Kind:       KindModel,
			TemplateID: TemplateModel,
			Folder:     modelDir,
			FileName:   m.Name + javaExt,
			Context: map[string]any{
				ContextModel:   m,
				ContextPackage: fs.ModelPackage(),
			},
		})
	}

	apiDir := common.JoinPath(fs.SourceFolder(), common.PackageDir(fs.APIPackage()))
	for _, g := range in.Groups {
		b.add(Artifact{
			Kind:       KindAPI,
			TemplateID: TemplateAPI,
			Folder:     apiDir,
			FileName:   g.Name + javaExt,
			Context: map[string]any{
				ContextClassName:  g.Name,
				ContextBaseName:   g.Key,
				ContextOperations: g.Operations,
				ContextPackage:    fs.APIPackage(),
			},
		})
	}

	b.addSupporting(TemplateReadme, "", "README.md", true)

	if fs.GeneratePom() {
		b.addSupporting(TemplatePom, "", "pom.xml", true)
	}

	if !fs.InterfaceOnly() {
		invokerDir := common.JoinPath(fs.SourceFolder(), common.PackageDir(fs.InvokerPackage()))
		b.addSupporting(TemplateRestApplication, invokerDir, "RestApplication"+javaExt, true)
	}

	if folder, file, ok := SpecCopyLocation(fs); ok {
		b.addSupporting(TemplateSpec, folder, file, false)
	}

	for _, sf := range fs.Variant().Profile().SupportingFiles {
		b.addSupporting(sf.TemplateID, sf.Folder, sf.FileName, true)
	}

	if b.err != nil {
		return nil, b.err
	}

	return &Manifest{artifacts: b.artifacts}, nil
}

// SpecCopyLocation splits the resolved specification file location on its
// last separator. ok is false when no copy is planned.
func SpecCopyLocation(fs feature.FeatureSet) (folder, file string, ok bool) {
	loc := fs.SpecFileLocation()
	if loc == "" {
		return "", "", false
	}

	folder, file = common.SplitLast(loc, "/")

	return folder, file, true
}

type builder struct {
	artifacts []Artifact
	seen      map[string]struct{}
	err       error
}

func (b *builder) add(a Artifact) {
	out := a.OutputPath()
	if !insideOutput(out) {
		if b.err == nil {
			b.err = errors.Wrapf(ErrOutsideOutput, "%q", out)
		}

		return
	}

	if _, dup := b.seen[out]; dup {
		if b.err == nil {
			b.err = errors.Wrapf(ErrDuplicateArtifact, "%s", out)
		}

		return
	}

	b.seen[out] = struct{}{}
	b.artifacts = append(b.artifacts, a)
}

func (b *builder) addSupporting(templateID, folder, file string, writeIfAbsent bool) {
	b.add(Artifact{
		Kind:          KindSupporting,
		TemplateID:    templateID,
		Folder:        folder,
		FileName:      file,
		WriteIfAbsent: writeIfAbsent,
		Context:       map[string]any{},
	})
}

func insideOutput(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") {
		return false
	}

	clean := path.Clean(p)

	return clean != ".." && !strings.HasPrefix(clean, "../")
}
