// Package symbol turns standalone SVG documents into <symbol> elements and
// collects them into a sprite.
//
// A Registrar lives for a whole build. Every transformed file adds one
// Symbol; the emitted module only needs Symbol.Render, while Registrar.Sprite
// renders the complete collection as a single hidden <svg> document.
package symbol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Namespaces written on rendered symbols and sprites.
const (
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// ErrNotSVG is returned when the document root is not an <svg> element.
var ErrNotSVG = errors.New("root element is not <svg>")

// droppedAttrs only make sense on a standalone document; a <symbol> is sized
// by the <use> element that references it.
var droppedAttrs = []string{"width", "height", "x", "y", "version", "id", "xml:space"}

// Input is the raw material for one symbol.
type Input struct {
	ID      string
	Content string
	Path    string
}

// Symbol is one graphic converted to a <symbol> element.
type Symbol struct {
	id      string
	path    string
	content string
	el      *etree.Element
	markup  string
}

// ID returns the identifier the symbol is registered under.
func (s *Symbol) ID() string { return s.id }

// Path returns the source file path.
func (s *Symbol) Path() string { return s.path }

// Content returns the SVG markup the symbol was built from.
func (s *Symbol) Content() string { return s.content }

// Render returns the self-contained <symbol> markup.
func (s *Symbol) Render() string { return s.markup }

// NewSymbol parses in.Content and converts its root <svg> into a <symbol>
// carrying in.ID.
func NewSymbol(in Input) (*Symbol, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(in.Content); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, ErrNotSVG
	}
	if root.Space != "" && root.NamespaceURI() != SVGNamespace {
		return nil, ErrNotSVG
	}

	el := root.Copy()
	if prefix := el.Space; prefix != "" {
		el.RemoveAttr("xmlns:" + prefix)
		unprefix(el, prefix)
	}
	el.Tag = "symbol"

	viewBox := el.SelectAttrValue("viewBox", "")
	if viewBox == "" {
		viewBox = sizeViewBox(el.SelectAttrValue("width", ""), el.SelectAttrValue("height", ""))
	}
	for _, key := range droppedAttrs {
		el.RemoveAttr(key)
	}
	el.RemoveAttr("viewBox")

	// Namespace declarations go first and the id last, so the output reads
	// like a hand-written symbol.
	kept := el.Attr
	el.Attr = nil
	el.CreateAttr("xmlns", SVGNamespace)
	if usesXLink(root) && !hasAttr(kept, "xmlns", "xlink") {
		el.CreateAttr("xmlns:xlink", XLinkNamespace)
	}
	for _, a := range kept {
		if a.Space == "" && a.Key == "xmlns" {
			continue
		}
		el.CreateAttr(a.FullKey(), a.Value)
	}
	if viewBox != "" {
		el.CreateAttr("viewBox", viewBox)
	}
	el.CreateAttr("id", in.ID)

	out := etree.NewDocument()
	out.SetRoot(el.Copy())
	markup, err := out.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("render symbol %s: %w", in.ID, err)
	}

	return &Symbol{
		id:      in.ID,
		path:    in.Path,
		content: in.Content,
		el:      el,
		markup:  markup,
	}, nil
}

// sizeViewBox builds "0 0 w h" from numeric width and height attributes.
// Relative units such as "100%" cannot be mapped and yield "".
func sizeViewBox(width, height string) string {
	w, okW := parseLength(width)
	h, okH := parseLength(height)
	if !okW || !okH {
		return ""
	}
	return "0 0 " + formatNumber(w) + " " + formatNumber(h)
}

func parseLength(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hasAttr(attrs []etree.Attr, space, key string) bool {
	for _, a := range attrs {
		if a.Space == space && a.Key == key {
			return true
		}
	}
	return false
}

// unprefix moves el and its descendants bound to prefix into the default
// namespace the symbol declares.
func unprefix(el *etree.Element, prefix string) {
	if el.Space == prefix {
		el.Space = ""
	}
	for i := range el.Attr {
		if el.Attr[i].Space == prefix {
			el.Attr[i].Space = ""
		}
	}
	for _, child := range el.ChildElements() {
		unprefix(child, prefix)
	}
}

func usesXLink(el *etree.Element) bool {
	for _, a := range el.Attr {
		if a.Space == "xlink" {
			return true
		}
	}
	for _, child := range el.ChildElements() {
		if usesXLink(child) {
			return true
		}
	}
	return false
}
