package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/svgsprite/internal/config"
	"github.com/specialistvlad/svgsprite/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the schema of an svgsprite.hcl file. Attributes with more than
// one accepted shape are kept as expressions and evaluated separately.
type fileRoot struct {
	Include     hcl.Expression `hcl:"include,optional"`
	SymbolID    *string        `hcl:"symbol_id,optional"`
	Svgo        hcl.Expression `hcl:"svgo,optional"`
	Runtime     *string        `hcl:"runtime,optional"`
	OnDuplicate *string        `hcl:"on_duplicate,optional"`
}

// Load parses and decodes a single HCL configuration file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding HCL config file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model, err := translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid HCL file %s: %w", path, err)
	}

	logger.Debug("Successfully decoded HCL config file.", "path", path, "include", model.Include, "svgo", model.Svgo.String())
	return model, nil
}

// translate converts the HCL-specific schema into the agnostic model.
func translate(root *fileRoot) (*config.Model, error) {
	m := &config.Model{
		SymbolID:    deref(root.SymbolID),
		Runtime:     deref(root.Runtime),
		OnDuplicate: deref(root.OnDuplicate),
	}

	include, diags := root.Include.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if m.Include, diags = decodeInclude(include, root.Include.Range()); diags.HasErrors() {
		return nil, diags
	}

	svgo, diags := root.Svgo.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if m.Svgo, diags = decodeSvgo(svgo, root.Svgo.Range()); diags.HasErrors() {
		return nil, diags
	}

	return m, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
