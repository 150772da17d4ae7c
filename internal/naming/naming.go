// Package naming turns group keys and schema names into Java identifiers.
//
// API names are derived from the group key. An empty key falls back to the
// primary resource name recorded by the grouping pass, then to DefaultAPIName.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/edgar1992/openapi-generator/internal/grouping"
)

// APISuffix is appended to every API name.
const APISuffix = "Api"

// DefaultAPIName is used for untitled groups when no primary resource exists.
const DefaultAPIName = "DefaultApi"

// NamedGroup is a group with its resolved API name.
type NamedGroup struct {
	grouping.Group
	// Name is the resolved identifier, never empty.
	Name string
	// MergedKeys lists further group keys that resolved to the same name.
	MergedKeys []string
}

// APIName resolves the identifier for a group key.
func APIName(key, primaryResourceName string) string {
	if key == "" {
		if primaryResourceName == "" {
			return DefaultAPIName
		}

		key = primaryResourceName
	}

	return Camelize(Sanitize(key)) + APISuffix
}

// Resolve names every group of res in group order.
//
// An untitled group can resolve to the name of a tag-named group. Groups
// sharing a name are merged into the first one, operations appended in
// group order, so every name maps to exactly one API.
func Resolve(res *grouping.Result) []NamedGroup {
	if res == nil {
		return nil
	}

	out := make([]NamedGroup, 0, len(res.Groups))
	byName := make(map[string]int, len(res.Groups))

	for _, g := range res.Groups {
		name := APIName(g.Key, res.PrimaryResourceName)

		if idx, ok := byName[name]; ok {
			out[idx].Operations = append(out[idx].Operations, g.Operations...)
			out[idx].MergedKeys = append(out[idx].MergedKeys, g.Key)

			continue
		}

		byName[name] = len(out)
		out = append(out, NamedGroup{
			Group: grouping.Group{
				Key:        g.Key,
				Operations: append([]grouping.GroupedOperation(nil), g.Operations...),
			},
			Name: name,
		})
	}

	return out
}

// ModelName returns the class name for a schema name.
func ModelName(name string) string {
	return Camelize(Sanitize(name))
}

// Sanitize replaces separators with underscores and drops every other rune
// that cannot appear in an identifier.
func Sanitize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch {
		case isReplaced(r):
			b.WriteRune('_')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isReplaced(r rune) bool {
	switch r {
	case '-', ' ', '.', '/', '[', ']', '(', ')':
		return true
	}

	return false
}

// Camelize upper-cases the first letter of every underscore separated word
// and joins the words. The rest of each word keeps its case.
//
//   - "pets" -> "Pets"
//   - "pet_store" -> "PetStore"
//   - "petStore" -> "PetStore"
func Camelize(s string) string {
	caser := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder

	for word := range strings.SplitSeq(s, "_") {
		if word == "" {
			continue
		}

		b.WriteString(caser.String(word))
	}

	return b.String()
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	return mapFirst(s, unicode.ToUpper)
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	return mapFirst(s, unicode.ToLower)
}

func mapFirst(s string, fn func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(fn(r)) + s[size:]
}
