// Package svgsprite turns SVG files into JavaScript modules that register
// the graphic in a shared runtime sprite and export its identifier.
//
// A Plugin is created once per build and hooked into esbuild:
//
//	p, err := svgsprite.New(svgsprite.Options{SymbolID: "icon-[name]"})
//	if err != nil {
//		return err
//	}
//	result := api.Build(api.BuildOptions{
//		EntryPoints: []string{"src/main.js"},
//		Bundle:      true,
//		External:    []string{p.Runtime()},
//		Plugins:     []api.Plugin{p.Esbuild(ctx)},
//	})
//
// Importing "./icons/close.svg" then yields the string "icon-close", and the
// runtime helper receives the rendered <symbol> markup.
package svgsprite

import (
	"context"

	"github.com/specialistvlad/svgsprite/internal/emit"
	"github.com/specialistvlad/svgsprite/internal/optimize"
	"github.com/specialistvlad/svgsprite/internal/pipeline"
	"github.com/specialistvlad/svgsprite/internal/symbol"
)

// Name is the plugin name reported to the host.
const Name = "svg-sprite"

type (
	// Options configures a Plugin. See pipeline.Options for the fields.
	Options = pipeline.Options
	// Setting is the resolved "svgo" option.
	Setting = optimize.Setting
	// OptimizerConfig tunes the SVG minifier.
	OptimizerConfig = optimize.Config
	// DuplicatePolicy decides how identifier collisions are handled.
	DuplicatePolicy = symbol.DuplicatePolicy
)

// Duplicate policies.
const (
	DuplicateOverwrite = symbol.DuplicateOverwrite
	DuplicateWarn      = symbol.DuplicateWarn
	DuplicateError     = symbol.DuplicateError
)

// SvgoDisabled turns optimization off.
func SvgoDisabled() Setting { return optimize.Disabled() }

// SvgoDefault optimizes with the default configuration.
func SvgoDefault() Setting { return optimize.EnabledDefault() }

// SvgoWith optimizes with cfg.
func SvgoWith(cfg OptimizerConfig) Setting { return optimize.EnabledWith(cfg) }

// Plugin is one configured instance of the transform. It is safe for
// concurrent use.
type Plugin struct {
	pipeline *pipeline.Pipeline
	runtime  string
}

// New builds a Plugin from opts.
func New(opts Options) (*Plugin, error) {
	p, err := pipeline.New(opts)
	if err != nil {
		return nil, err
	}
	runtime := opts.Runtime
	if runtime == "" {
		runtime = emit.DefaultRuntime
	}
	return &Plugin{pipeline: p, runtime: runtime}, nil
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return Name }

// Runtime returns the import path emitted modules use for the registration
// helper.
func (p *Plugin) Runtime() string { return p.runtime }

// Matches reports whether filePath is in the plugin's scope.
func (p *Plugin) Matches(filePath string) bool {
	return p.pipeline.Matches(filePath)
}

// Transform is the host hook. ok is false when filePath is out of scope and
// the host should load the file itself.
func (p *Plugin) Transform(ctx context.Context, src, filePath string) (code string, ok bool, err error) {
	res, err := p.pipeline.Transform(ctx, src, filePath)
	if err != nil || res == nil {
		return "", false, err
	}
	return res.Code, true, nil
}

// Sprite renders every symbol registered so far as one <svg> document.
func (p *Plugin) Sprite() (string, error) {
	return p.pipeline.Registrar().Sprite()
}

// Symbols returns the number of registered symbols.
func (p *Plugin) Symbols() int {
	return p.pipeline.Registrar().Len()
}
