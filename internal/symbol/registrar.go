package symbol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/beevik/etree"

	"github.com/specialistvlad/svgsprite/internal/ctxlog"
)

// ErrDuplicateID is returned under DuplicateError when a second file claims
// an identifier that is already registered.
var ErrDuplicateID = errors.New("duplicate symbol id")

// DuplicatePolicy decides what happens when two different files resolve to
// the same identifier. The same file registering again (a watch-mode
// rebuild) always replaces its previous symbol.
type DuplicatePolicy int

const (
	// DuplicateOverwrite silently keeps the last registration.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateWarn logs a warning and keeps the last registration.
	DuplicateWarn
	// DuplicateError rejects the second registration with ErrDuplicateID.
	DuplicateError
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateOverwrite:
		return "overwrite"
	case DuplicateWarn:
		return "warn"
	case DuplicateError:
		return "error"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// ParseDuplicatePolicy maps the configuration spelling of a policy. The
// empty string is DuplicateOverwrite.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return DuplicateOverwrite, nil
	case "warn":
		return DuplicateWarn, nil
	case "error":
		return DuplicateError, nil
	default:
		return DuplicateOverwrite, fmt.Errorf("unknown duplicate policy %q: must be 'overwrite', 'warn' or 'error'", s)
	}
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithDuplicatePolicy sets how identifier collisions are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(r *Registrar) { r.policy = p }
}

// WithLogger sets the logger used for duplicate warnings. Without it the
// logger is taken from the context passed to AddSymbol.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registrar) { r.logger = l }
}

// Registrar accumulates the symbols of one build. It is safe for concurrent
// use.
type Registrar struct {
	policy DuplicatePolicy
	logger *slog.Logger

	mu      sync.RWMutex
	symbols map[string]*Symbol
	// byPath maps a source file to the id it was last registered under.
	byPath map[string]string
}

// NewRegistrar creates an empty Registrar.
func NewRegistrar(opts ...Option) *Registrar {
	r := &Registrar{
		symbols: make(map[string]*Symbol),
		byPath:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the duplicate policy in effect.
func (r *Registrar) Policy() DuplicatePolicy { return r.policy }

// AddSymbol converts in into a Symbol and stores it under in.ID. A file
// registered again under a different id replaces its earlier symbol.
func (r *Registrar) AddSymbol(ctx context.Context, in Input) (*Symbol, error) {
	sym, err := NewSymbol(in)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	prev, exists := r.symbols[in.ID]
	if exists && prev.path != in.Path {
		switch r.policy {
		case DuplicateError:
			r.mu.Unlock()
			return nil, fmt.Errorf("%w %q: already registered by %s", ErrDuplicateID, in.ID, prev.path)
		case DuplicateWarn:
			r.log(ctx).Warn("Symbol id registered by more than one file, last one wins.",
				"id", in.ID, "previous", prev.path, "current", in.Path)
		}
	}
	if oldID, ok := r.byPath[in.Path]; ok && oldID != in.ID {
		if old := r.symbols[oldID]; old != nil && old.path == in.Path {
			delete(r.symbols, oldID)
		}
	}
	r.symbols[in.ID] = sym
	r.byPath[in.Path] = in.ID
	r.mu.Unlock()

	return sym, nil
}

// Lookup returns the symbol registered under id.
func (r *Registrar) Lookup(id string) (*Symbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sym, ok := r.symbols[id]
	return sym, ok
}

// Len returns the number of registered symbols.
func (r *Registrar) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.symbols)
}

// Symbols returns the registered symbols sorted by id.
func (r *Registrar) Symbols() []*Symbol {
	r.mu.RLock()
	out := make([]*Symbol, 0, len(r.symbols))
	for _, sym := range r.symbols {
		out = append(out, sym)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Sprite renders every registered symbol inside one hidden <svg> document,
// ordered by id.
func (r *Registrar) Sprite() (string, error) {
	root := etree.NewElement("svg")
	root.CreateAttr("xmlns", SVGNamespace)
	root.CreateAttr("xmlns:xlink", XLinkNamespace)
	root.CreateAttr("style", "position:absolute;width:0;height:0")
	root.CreateAttr("aria-hidden", "true")

	for _, sym := range r.Symbols() {
		el := sym.el.Copy()
		// The sprite root already declares the namespaces.
		el.RemoveAttr("xmlns")
		el.RemoveAttr("xmlns:xlink")
		root.AddChild(el)
	}

	doc := etree.NewDocument()
	doc.SetRoot(root)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("render sprite: %w", err)
	}
	return out, nil
}

func (r *Registrar) log(ctx context.Context) *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return ctxlog.FromContext(ctx)
}
