// Package openapi adapts OpenAPI 3 documents into planner inputs.
//
// Parsing is done by kin-openapi. Its path and property maps do not keep
// declaration order, so the order is read separately from the YAML node tree
// of the same bytes.
package openapi

import (
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/edgar1992/openapi-generator/internal/common"
	"github.com/edgar1992/openapi-generator/internal/grouping"
)

// ErrInvalidDocument is returned for input that is not an OpenAPI document.
var ErrInvalidDocument = errors.New("invalid OpenAPI document")

// methodOrder is the order operations of one path are emitted in.
var methodOrder = []string{"GET", "HEAD", "PUT", "POST", "DELETE", "PATCH", "OPTIONS", "TRACE"}

// Document is a parsed specification.
type Document struct {
	spec *openapi3.T
	root *yaml.Node
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading specification %s", path)
	}

	doc, err := Load(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	return doc, nil
}

// Load parses a YAML or JSON document.
func Load(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing document"), ErrInvalidDocument)
	}

	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Wrap(ErrInvalidDocument, "document is not a mapping")
	}

	loader := openapi3.NewLoader()

	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "loading OpenAPI document"), ErrInvalidDocument)
	}

	if spec.OpenAPI == "" {
		return nil, errors.Wrap(ErrInvalidDocument, "missing openapi version field")
	}

	return &Document{spec: spec, root: root.Content[0]}, nil
}

// Title returns info.title, empty when absent.
func (d *Document) Title() string {
	if d.spec.Info == nil {
		return ""
	}

	return d.spec.Info.Title
}

// Version returns info.version, empty when absent.
func (d *Document) Version() string {
	if d.spec.Info == nil {
		return ""
	}

	return d.spec.Info.Version
}

// Operations lists every operation in document order: paths as declared,
// methods of one path in a fixed order.
func (d *Document) Operations() []grouping.Operation {
	if d.spec.Paths == nil {
		return nil
	}

	var out []grouping.Operation

	for _, path := range d.pathOrder() {
		item := d.spec.Paths.Value(path)
		if item == nil {
			continue
		}

		ops := item.Operations()

		for _, method := range methodOrder {
			op, ok := ops[method]
			if !ok || op == nil {
				continue
			}

			tag, _ := common.First(op.Tags)

			out = append(out, grouping.Operation{
				Path:        path,
				Tag:         tag,
				Method:      method,
				OperationID: op.OperationID,
				Summary:     op.Summary,
			})
		}
	}

	return out
}

// pathOrder returns the declared path keys, falling back to sorted order
// for paths the node walk did not see.
func (d *Document) pathOrder() []string {
	declared := mappingKeys(d.root, "paths")
	known := d.spec.Paths.Map()

	out := make([]string, 0, len(known))

	for _, p := range declared {
		if _, ok := known[p]; ok {
			out = append(out, p)
		}
	}

	var rest []string

	for p := range known {
		if !slices.Contains(out, p) {
			rest = append(rest, p)
		}
	}

	slices.Sort(rest)

	return append(out, rest...)
}

// YAML returns the document re-encoded as YAML, keeping declaration order.
// It is used for the specification copy.
func (d *Document) YAML() ([]byte, error) {
	data, err := yaml.Marshal(d.root)
	if err != nil {
		return nil, errors.Wrap(err, "encoding specification copy")
	}

	return data, nil
}

// mappingKeys walks the mapping nodes along path and returns the keys of the
// last one in declaration order.
func mappingKeys(node *yaml.Node, path ...string) []string {
	node = lookup(node, path...)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}

	return keys
}

func lookup(node *yaml.Node, path ...string) *yaml.Node {
	for _, key := range path {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}

		var next *yaml.Node

		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}

		node = next
	}

	return node
}
