// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package pipeline is the per-file transform at the heart of svgsprite.
//
// For every candidate file the host hands over, Transform runs a fixed,
// linear sequence:
//
//	match → read → optimize → derive id → register → emit module
//
// A Pipeline is built once per build from immutable Options and owns the
// symbol.Registrar that accumulates the sprite. Transform may be called from
// many goroutines at once; the registrar is the only shared mutable state.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/svgsprite/internal/ctxlog"
	"github.com/specialistvlad/svgsprite/internal/emit"
	"github.com/specialistvlad/svgsprite/internal/loader"
	"github.com/specialistvlad/svgsprite/internal/match"
	"github.com/specialistvlad/svgsprite/internal/optimize"
	"github.com/specialistvlad/svgsprite/internal/symbol"
	"github.com/specialistvlad/svgsprite/internal/symbolid"
)

// Options configures a Pipeline.
type Options struct {
	// Include lists glob patterns; a file is transformed when it matches any
	// of them. Empty means match.DefaultPattern.
	Include []string
	// SymbolID is the identifier template ("[name]", "icon-[hash]", ...).
	// Empty means the file's base name.
	SymbolID string
	// Svgo controls optimization. The zero value optimizes with defaults.
	Svgo optimize.Setting
	// Runtime is the import path of the registration helper.
	Runtime string
	// OnDuplicate decides how identifier collisions between files are
	// handled. The zero value overwrites silently.
	OnDuplicate symbol.DuplicatePolicy
	// Root is the directory relative include patterns are anchored to.
	// Files outside it, or every file when Root is empty, are matched by
	// their path as given.
	Root string
}

// Option injects a collaborator into a Pipeline.
type Option func(*Pipeline)

// WithOptimizer replaces the default minifier.
func WithOptimizer(o optimize.Optimizer) Option {
	return func(p *Pipeline) { p.optimizer = o }
}

// WithLoader replaces the default file loader.
func WithLoader(l loader.Loader) Option {
	return func(p *Pipeline) { p.loader = l }
}

// WithRegistrar shares an existing registrar instead of creating one.
func WithRegistrar(r *symbol.Registrar) Option {
	return func(p *Pipeline) { p.registrar = r }
}

// Result is the outcome of transforming one file.
type Result struct {
	// Code is the replacement module source.
	Code string
	// ID is the identifier the symbol was registered under.
	ID string
	// Path is the transformed file.
	Path string
	// Optimized reports whether the optimizer output replaced the source.
	Optimized bool
}

// Pipeline transforms matched SVG files into registration modules.
type Pipeline struct {
	matcher   *match.Matcher
	root      string
	template  symbolid.Template
	svgo      optimize.Setting
	emitter   emit.Emitter
	optimizer optimize.Optimizer
	loader    loader.Loader
	registrar *symbol.Registrar
}

// New validates opts and builds a Pipeline with its own registrar.
func New(opts Options, deps ...Option) (*Pipeline, error) {
	// match.New copies the patterns; opts is not retained.
	matcher, err := match.New(opts.Include...)
	if err != nil {
		return nil, err
	}

	var root string
	if opts.Root != "" {
		if root, err = filepath.Abs(opts.Root); err != nil {
			return nil, fmt.Errorf("resolve root %s: %w", opts.Root, err)
		}
	}

	p := &Pipeline{
		matcher:   matcher,
		root:      root,
		template:  symbolid.Parse(opts.SymbolID),
		svgo:      opts.Svgo,
		emitter:   emit.Emitter{Runtime: opts.Runtime},
		optimizer: optimize.Minifier{},
		loader:    loader.File{},
	}
	for _, dep := range deps {
		dep(p)
	}
	if p.registrar == nil {
		p.registrar = symbol.NewRegistrar(symbol.WithDuplicatePolicy(opts.OnDuplicate))
	}
	return p, nil
}

// Registrar returns the registrar shared by every Transform call.
func (p *Pipeline) Registrar() *symbol.Registrar {
	return p.registrar
}

// Matches reports whether filePath is in scope.
func (p *Pipeline) Matches(filePath string) bool {
	return p.matcher.Match(p.scoped(filePath))
}

// scoped returns filePath relative to the root when it lies inside it.
func (p *Pipeline) scoped(filePath string) string {
	if p.root == "" {
		return filePath
	}
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return filePath
	}
	rel, err := filepath.Rel(p.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filePath
	}
	return rel
}

// Transform processes one file. It returns a nil Result and a nil error when
// filePath is out of scope, meaning "no transformation". The src argument is
// what the host has loaded so far; the file is always re-read from disk.
func (p *Pipeline) Transform(ctx context.Context, src, filePath string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	if !p.Matches(filePath) {
		return nil, nil
	}
	logger.Debug("Transforming file.", "path", filePath)

	code, err := p.loader.Load(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", filePath, err)
	}

	code, optimized, err := p.svgo.Apply(ctx, p.optimizer, code)
	if err != nil {
		return nil, fmt.Errorf("transform %s: optimize: %w", filePath, err)
	}

	id := p.template.Render(symbolid.BaseName(filePath), code)

	sym, err := p.registrar.AddSymbol(ctx, symbol.Input{ID: id, Content: code, Path: filePath})
	if err != nil {
		return nil, fmt.Errorf("transform %s: register symbol: %w", filePath, err)
	}
	logger.Debug("Symbol registered.", "path", filePath, "id", id, "optimized", optimized)

	return &Result{
		Code:      p.emitter.Emit(sym.Render(), id),
		ID:        id,
		Path:      filePath,
		Optimized: optimized,
	}, nil
}
