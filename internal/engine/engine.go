// Package engine wires the planning stages into one generation run.
//
// A run is synchronous and keeps no state between calls:
//
//	variant.Lookup -> feature.Resolve -> grouping.Partition -> naming.Resolve
//	                                  -> modelmeta.FilterAll
//	                                  -> plan.Build
package engine

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/edgar1992/openapi-generator/internal/diagnostic"
	"github.com/edgar1992/openapi-generator/internal/feature"
	"github.com/edgar1992/openapi-generator/internal/grouping"
	"github.com/edgar1992/openapi-generator/internal/logger"
	"github.com/edgar1992/openapi-generator/internal/modelmeta"
	"github.com/edgar1992/openapi-generator/internal/naming"
	"github.com/edgar1992/openapi-generator/internal/plan"
	"github.com/edgar1992/openapi-generator/internal/variant"
)

// Request is the input of one run.
type Request struct {
	// Variant is the library variant name; empty selects the default.
	Variant string
	// Overrides are caller supplied feature options.
	Overrides map[string]any
	// Operations in specification order.
	Operations []grouping.Operation
	// Models as produced by the specification adapter.
	Models []modelmeta.ModelDescriptor
}

// Result is the output of one run.
type Result struct {
	Features    feature.FeatureSet
	Groups      []naming.NamedGroup
	Models      []modelmeta.ModelDescriptor
	Manifest    *plan.Manifest
	Diagnostics *diagnostic.Diagnostics
}

// Run plans the artifacts for req. An unsupported variant fails before any
// grouping or planning happens.
func Run(req Request) (*Result, error) {
	v, err := variant.Lookup(req.Variant)
	if err != nil {
		return nil, err
	}

	diags := &diagnostic.Diagnostics{}

	fs, featureDiags := feature.Resolve(v, req.Overrides)
	diags.Merge(featureDiags)
	logger.Debugw("features resolved",
		"variant", v.String(),
		"use_swagger_annotations", fs.UseSwaggerAnnotations(),
		"jackson", fs.Jackson(),
		"spec_file_location", fs.SpecFileLocation())

	grouped := grouping.Partition(req.Operations)
	diags.Merge(&grouped.Diagnostics)

	groups := naming.Resolve(grouped)
	logger.Debugw("operations grouped",
		"operations", grouped.Len(),
		"groups", len(groups),
		"primary_resource", grouped.PrimaryResourceName)

	models := modelmeta.FilterAll(namedModels(req.Models, diags), fs)
	logger.Debugw("models filtered", "models", len(models))

	manifest, err := plan.Build(plan.Input{
		Groups:   groups,
		Models:   models,
		Features: fs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "planning artifacts")
	}

	logger.Debugw("artifacts planned", "artifacts", manifest.Len(), "paths", manifest.Paths())

	return &Result{
		Features:    fs,
		Groups:      groups,
		Models:      models,
		Manifest:    manifest,
		Diagnostics: diags,
	}, nil
}

// namedModels drops descriptors without a class name and renames class
// name collisions by appending the lowest free numeric suffix, in order.
func namedModels(models []modelmeta.ModelDescriptor, diags *diagnostic.Diagnostics) []modelmeta.ModelDescriptor {
	out := make([]modelmeta.ModelDescriptor, 0, len(models))
	taken := make(map[string]struct{}, len(models))

	for _, m := range models {
		if m.Name != "" {
			taken[m.Name] = struct{}{}
		}
	}

	used := make(map[string]struct{}, len(models))

	for _, m := range models {
		if m.Name == "" {
			diags.AddWarning(diagnostic.CodeUnnamedModel, "model has no class name, skipped", m.SchemaName)
			continue
		}

		if _, dup := used[m.Name]; dup {
			renamed := freeName(m.Name, taken)
			diags.AddWarning(diagnostic.CodeDuplicateModel,
				"class name "+m.Name+" already used, renamed to "+renamed, m.SchemaName)
			m.Name = renamed
		}

		used[m.Name] = struct{}{}
		out = append(out, m)
	}

	return out
}

// freeName returns base followed by the lowest suffix not in taken and
// records it.
func freeName(base string, taken map[string]struct{}) string {
	for i := 1; ; i++ {
		name := base + strconv.Itoa(i)
		if _, ok := taken[name]; !ok {
			taken[name] = struct{}{}
			return name
		}
	}
}
