package plan

import (
	"gopkg.in/yaml.v3"
)

// ExportedArtifact is the YAML view of one artifact.
type ExportedArtifact struct {
	Path          string `yaml:"path"`
	Kind          string `yaml:"kind"`
	Template      string `yaml:"template"`
	WriteIfAbsent bool   `yaml:"write_if_absent,omitempty"`
}

// ExportedManifest is the YAML view of a manifest.
type ExportedManifest struct {
	Version   string             `yaml:"version"`
	Artifacts []ExportedArtifact `yaml:"artifacts"`
}

// Export converts a manifest into its serializable view.
// Template contexts are not exported.
func Export(m *Manifest) *ExportedManifest {
	em := &ExportedManifest{
		Version:   "1",
		Artifacts: []ExportedArtifact{},
	}

	for _, a := range m.Artifacts() {
		em.Artifacts = append(em.Artifacts, ExportedArtifact{
			Path:          a.OutputPath(),
			Kind:          a.Kind.String(),
			Template:      a.TemplateID,
			WriteIfAbsent: a.WriteIfAbsent,
		})
	}

	return em
}

// ExportYAML serializes a manifest for review.
func ExportYAML(m *Manifest) ([]byte, error) {
	return yaml.Marshal(Export(m))
}
