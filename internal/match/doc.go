// Package match ranks known names by similarity to a name the user typed,
// for "did you mean" suggestions on variants and option keys.
//
// Key functions:
//   - Normalize: folds case and strips separators
//   - Distance: Levenshtein edit distance over runes
//   - Closest: ranks candidates against a misspelled name
package match
