// Package symbolid derives the identifier a graphic is registered under.
//
// Identifiers come from a template with two recognized placeholders:
//
//	[name]  the file's base name, without directory or extension
//	[hash]  the first 6 hex digits of the SHA-256 of the emitted content
//
// Any other bracketed token is copied to the output unchanged.
package symbolid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// Placeholder names understood by Template.
const (
	Name = "name"
	Hash = "hash"
)

// HashLength is the number of hex digits kept from the content digest.
const HashLength = 6

// Template is a parsed identifier template. The zero value is the empty
// template, which renders to the base name.
type Template struct {
	raw   string
	parts []part
	hash  bool
}

type part struct {
	literal     string
	placeholder string
}

// Parse splits s into literal text and placeholders. It never fails.
func Parse(s string) Template {
	t := Template{raw: s}

	var lit strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '[' {
			if end := strings.IndexByte(s[i+1:], ']'); end >= 0 {
				token := s[i+1 : i+1+end]
				if token == Name || token == Hash {
					if lit.Len() > 0 {
						t.parts = append(t.parts, part{literal: lit.String()})
						lit.Reset()
					}
					t.parts = append(t.parts, part{placeholder: token})
					t.hash = t.hash || token == Hash
					i += end + 2
					continue
				}
			}
		}
		lit.WriteByte(s[i])
		i++
	}
	if lit.Len() > 0 {
		t.parts = append(t.parts, part{literal: lit.String()})
	}
	return t
}

// String returns the template source.
func (t Template) String() string { return t.raw }

// IsZero reports whether the template is empty.
func (t Template) IsZero() bool { return t.raw == "" }

// UsesHash reports whether rendering needs the content digest.
func (t Template) UsesHash() bool { return t.hash }

// Render substitutes the placeholders. An empty template yields name.
func (t Template) Render(name, content string) string {
	if t.IsZero() {
		return name
	}

	var digest string
	if t.hash {
		digest = ContentHash(content)
	}

	var b strings.Builder
	for _, p := range t.parts {
		switch p.placeholder {
		case Name:
			b.WriteString(name)
		case Hash:
			b.WriteString(digest)
		default:
			b.WriteString(p.literal)
		}
	}
	return b.String()
}

// Derive renders template for the given base name and content.
func Derive(baseName, content, template string) string {
	return Parse(template).Render(baseName, content)
}

// ContentHash returns the first HashLength lowercase hex digits of the
// SHA-256 digest of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])[:HashLength]
}

// BaseName returns the file name of path without its directory and last
// extension. A dot-file without another extension keeps its full name.
func BaseName(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}
