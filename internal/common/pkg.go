package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PackageDir converts a dotted package name to a slash separated directory.
// Returns empty string if pkg is empty.
func PackageDir(pkg string) string {
	if pkg == "" {
		return ""
	}

	return strings.ReplaceAll(pkg, ".", "/")
}

// SplitLast splits s around the last occurrence of sep.
// When sep is absent, head is empty and tail is s.
func SplitLast(s, sep string) (head, tail string) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return "", s
	}

	return s[:idx], s[idx+len(sep):]
}

// JoinPath joins non-empty slash separated parts.
func JoinPath(parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, "/")
}
