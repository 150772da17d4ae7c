package writer

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// IgnoreFileName is the ignore file looked up in the output directory.
const IgnoreFileName = ".openapi-generator-ignore"

type ignoreRule struct {
	pattern string
	negate  bool
}

// IgnoreList holds the patterns of an ignore file. Later rules override
// earlier ones; a rule starting with "!" re-includes matching paths.
type IgnoreList struct {
	rules []ignoreRule
}

// LoadIgnoreFile reads the ignore file at path. A missing file yields an
// empty list.
func LoadIgnoreFile(path string) (*IgnoreList, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &IgnoreList{}, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "reading ignore file %s", path)
	}

	return ParseIgnore(data)
}

// ParseIgnore parses ignore file content. Blank lines and lines starting
// with "#" are skipped. A pattern ending in "/" matches everything below
// that directory; a pattern without "/" matches at any depth.
func ParseIgnore(data []byte) (*IgnoreList, error) {
	list := &IgnoreList{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rule := ignoreRule{}
		if after, ok := strings.CutPrefix(line, "!"); ok {
			rule.negate = true
			line = after
		}

		line = strings.TrimPrefix(line, "/")

		switch {
		case strings.HasSuffix(line, "/"):
			line += "**"
		case !strings.Contains(line, "/"):
			line = "**/" + line
		}

		if !doublestar.ValidatePattern(line) {
			return nil, errors.Newf("invalid ignore pattern %q", scanner.Text())
		}

		rule.pattern = line
		list.rules = append(list.rules, rule)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning ignore file")
	}

	return list, nil
}

// Ignored reports whether the slash separated path is excluded.
func (l *IgnoreList) Ignored(path string) bool {
	if l == nil {
		return false
	}

	ignored := false

	for _, rule := range l.rules {
		if match, _ := doublestar.Match(rule.pattern, path); match {
			ignored = !rule.negate
		}
	}

	return ignored
}

// Len returns the number of rules.
func (l *IgnoreList) Len() int {
	if l == nil {
		return 0
	}

	return len(l.rules)
}
