// Package emit writes the JavaScript module that replaces a transformed file.
package emit

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DefaultRuntime is the import path of the runtime helper whose default
// export registers a symbol: addSymbol(markup, id).
const DefaultRuntime = "svgsprite/runtime"

// Emitter renders replacement modules. The zero value imports
// DefaultRuntime.
type Emitter struct {
	Runtime string
}

// Emit returns an ES module that registers rendered under id when it is
// evaluated and exports id as its default value.
func (e Emitter) Emit(rendered, id string) string {
	runtime := e.Runtime
	if runtime == "" {
		runtime = DefaultRuntime
	}

	var b strings.Builder
	b.WriteString("import addSymbol from ")
	b.WriteString(Literal(runtime))
	b.WriteString(";\naddSymbol(")
	b.WriteString(Literal(rendered))
	b.WriteString(", ")
	b.WriteString(Literal(id))
	b.WriteString(");\nexport default ")
	b.WriteString(Literal(id))
	b.WriteString(";\n")
	return b.String()
}

// Literal quotes s as a JavaScript string literal. JSON string syntax is a
// subset of JavaScript's; U+2028 and U+2029 are escaped as well, so the
// literal is valid in every ECMAScript version.
func Literal(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
