// Package match decides which files the transform pipeline handles.
//
// Patterns use doublestar glob syntax. Unlike shell globbing, `*` and `**`
// match path segments that start with a dot, so hidden files and directories
// are never silently excluded.
package match

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches any path ending in ".svg", at any depth.
const DefaultPattern = "**.svg"

// ErrBadPattern is returned by New for patterns that are not valid globs.
var ErrBadPattern = errors.New("invalid include pattern")

// Matcher holds a compiled set of include patterns. A path is included when
// it matches at least one of them. A Matcher is immutable and safe for
// concurrent use.
type Matcher struct {
	patterns []string
}

// New validates the patterns and returns a Matcher. With no patterns the
// Matcher uses DefaultPattern.
func New(patterns ...string) (*Matcher, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		n := normalize(p)
		if n == "" || !doublestar.ValidatePattern(n) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
		normalized = append(normalized, n)
	}

	return &Matcher{patterns: normalized}, nil
}

// Patterns returns the normalized patterns.
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}

// Match reports whether filePath matches at least one pattern.
func (m *Matcher) Match(filePath string) bool {
	slashed := filepath.ToSlash(filePath)
	relative := trimRoot(slashed)

	for _, p := range m.patterns {
		target := relative
		if strings.HasPrefix(p, "/") {
			target = slashed
		}
		if doublestar.MatchUnvalidated(p, target) {
			return true
		}
	}
	return false
}

// Included reports whether filePath matches at least one of the patterns.
// Invalid patterns never match.
func Included(filePath string, patterns ...string) bool {
	m, err := New(patterns...)
	if err != nil {
		return false
	}
	return m.Match(filePath)
}

// normalize rewrites a globstar glued to a name ("**.svg", "icons/**-24.svg")
// into its segment form ("**/*.svg"), which is how such patterns read to
// users: any file with that suffix at any depth.
func normalize(pattern string) string {
	p := filepath.ToSlash(strings.TrimSpace(pattern))
	if !strings.Contains(p, "**") {
		return p
	}

	var b strings.Builder
	for i := 0; i < len(p); i++ {
		if strings.HasPrefix(p[i:], "**") {
			b.WriteString("**")
			i++
			if i+1 < len(p) && p[i+1] != '/' && p[i+1] != '*' {
				b.WriteString("/*")
			}
			continue
		}
		b.WriteByte(p[i])
	}
	return b.String()
}

// trimRoot strips a volume name and the leading separators so absolute paths
// handed over by the host can be matched by relative patterns.
func trimRoot(p string) string {
	if vol := filepath.VolumeName(p); vol != "" {
		p = p[len(vol):]
	}
	if p == "" {
		return p
	}
	return strings.TrimLeft(path.Clean(p), "/")
}
