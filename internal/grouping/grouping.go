// Package grouping partitions the operations of a specification into
// resource groups keyed by the first path segment.
//
// Grouping is a single sequential pass. Besides the groups it accumulates the
// primary resource name: the tag of the last tagged operation whose path is
// the root. Naming depends on that value, so the pass must see operations in
// specification order and must not be parallelized.
package grouping

import (
	"strings"

	"github.com/edgar1992/openapi-generator/internal/diagnostic"
)

// Operation is one API operation as declared by the specification.
type Operation struct {
	// Path is the raw resource path, e.g. "/pets/{id}".
	Path string
	// Tag is the first declared tag, possibly empty.
	Tag string
	// Method is the upper case HTTP method.
	Method string
	// OperationID is the declared operation identifier.
	OperationID string
	// Summary is the declared one-line summary.
	Summary string
}

// String returns "METHOD path".
func (o Operation) String() string {
	if o.Method == "" {
		return o.Path
	}

	return o.Method + " " + o.Path
}

// Descriptor records what the grouping pass decided for one operation.
type Descriptor struct {
	// Path is the path left after stripping the group's base segment.
	Path string
	// BaseName is the group base: the literal first segment or the tag.
	BaseName string
	// SubresourceOperation is true when the operation addresses something
	// below the group's base path.
	SubresourceOperation bool
}

// GroupedOperation pairs an operation with its descriptor.
type GroupedOperation struct {
	Operation  Operation
	Descriptor Descriptor
}

// Group is an ordered bucket of operations sharing a key.
type Group struct {
	// Key is the first path segment or the tag; empty for untitled groups.
	Key string
	// Operations are in specification order.
	Operations []GroupedOperation
}

// Result is the output of one grouping pass.
type Result struct {
	// Groups in order of first appearance of their key.
	Groups []Group
	// PrimaryResourceName is the tag of the last tagged root path operation.
	PrimaryResourceName string
	// Diagnostics collected during the pass.
	Diagnostics diagnostic.Diagnostics
}

// Len returns the total number of grouped operations.
func (r *Result) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Operations)
	}

	return n
}

// Group returns the group with the given key.
func (r *Result) Group(key string) (Group, bool) {
	for _, g := range r.Groups {
		if g.Key == key {
			return g, true
		}
	}

	return Group{}, false
}

// Grouper accumulates state across one grouping pass.
// A Grouper must not be reused for a second specification.
type Grouper struct {
	groups  []Group
	index   map[string]int
	primary string
	diags   diagnostic.Diagnostics
}

// NewGrouper creates an empty accumulator.
func NewGrouper() *Grouper {
	return &Grouper{index: make(map[string]int)}
}

// Partition runs a full pass over ops in order.
func Partition(ops []Operation) *Result {
	g := NewGrouper()
	for _, op := range ops {
		g.Add(op)
	}

	return g.Result()
}

// Add groups one operation and returns its grouped form.
func (g *Grouper) Add(op Operation) GroupedOperation {
	base := strings.TrimPrefix(op.Path, "/")
	if pos := strings.Index(base, "/"); pos > 0 {
		base = base[:pos]
	}

	desc := Descriptor{Path: op.Path}

	var key string

	switch {
	case base == "":
		desc.BaseName = op.Tag
		key = op.Tag

		if op.Tag == "" {
			g.diags.AddInfo(diagnostic.CodeRootPathWithoutTag,
				"root path operation has no tag, grouped as untitled", op.String())
		} else {
			g.primary = op.Tag
		}
	case isPathParam(base):
		desc.BaseName = op.Tag
		desc.SubresourceOperation = true
		key = op.Tag

		if op.Tag == "" {
			g.diags.AddInfo(diagnostic.CodeParamBaseWithoutTag,
				"parameterized first segment has no tag, grouped as untitled", op.String())
		}
	default:
		desc.Path = strings.TrimPrefix(desc.Path, "/"+base)
		desc.SubresourceOperation = desc.Path != ""
		desc.BaseName = base
		key = base
	}

	grouped := GroupedOperation{Operation: op, Descriptor: desc}

	idx, ok := g.index[key]
	if !ok {
		idx = len(g.groups)
		g.index[key] = idx
		g.groups = append(g.groups, Group{Key: key})
	}

	g.groups[idx].Operations = append(g.groups[idx].Operations, grouped)

	return grouped
}

// Result snapshots the accumulated groups.
func (g *Grouper) Result() *Result {
	groups := make([]Group, len(g.groups))
	for i, grp := range g.groups {
		groups[i] = Group{
			Key:        grp.Key,
			Operations: append([]GroupedOperation(nil), grp.Operations...),
		}
	}

	res := &Result{
		Groups:              groups,
		PrimaryResourceName: g.primary,
	}
	res.Diagnostics.Merge(&g.diags)

	return res
}

// isPathParam reports whether segment is entirely wrapped in braces.
func isPathParam(segment string) bool {
	return len(segment) >= 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}
