// Package optimize minifies SVG markup before it is registered.
//
// Optimization is best-effort: an optimizer that produces no output leaves
// the original markup in place, while an optimizer error fails the file.
package optimize

import (
	"context"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/specialistvlad/svgsprite/internal/ctxlog"
)

const (
	svgMediaType = "image/svg+xml"
	cssMediaType = "text/css"
)

// Config tunes the optimizer. The zero value is the default configuration.
type Config struct {
	// Precision is the number of significant digits kept in numbers and
	// path data. 0 keeps every digit.
	Precision int
	// KeepComments preserves <!-- --> comments.
	KeepComments bool
}

// Optimizer rewrites SVG markup into a smaller, equivalent form.
type Optimizer interface {
	Optimize(ctx context.Context, content string, cfg Config) (string, error)
}

// Minifier is the default Optimizer, backed by tdewolff/minify. It is safe
// for concurrent use.
type Minifier struct{}

// Optimize implements Optimizer.
func (Minifier) Optimize(ctx context.Context, content string, cfg Config) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m := minify.New()
	m.AddFunc(cssMediaType, css.Minify)
	m.Add(svgMediaType, &svg.Minifier{
		Precision:    cfg.Precision,
		KeepComments: cfg.KeepComments,
	})

	out, err := m.String(svgMediaType, content)
	if err != nil {
		return "", fmt.Errorf("minify svg: %w", err)
	}
	return out, nil
}

// Func adapts a plain function to the Optimizer interface.
type Func func(ctx context.Context, content string, cfg Config) (string, error)

// Optimize implements Optimizer.
func (f Func) Optimize(ctx context.Context, content string, cfg Config) (string, error) {
	return f(ctx, content, cfg)
}

// Apply runs opt over content according to the setting. It returns the
// content to use and whether the optimizer output replaced the original.
// Empty optimizer output is not an error: the original content is kept and
// the fallback is only visible in debug logs.
func (s Setting) Apply(ctx context.Context, opt Optimizer, content string) (string, bool, error) {
	if !s.Enabled() {
		return content, false, nil
	}

	out, err := opt.Optimize(ctx, content, s.Config())
	if err != nil {
		return "", false, err
	}
	if out == "" {
		ctxlog.FromContext(ctx).Debug("Optimizer returned no data, keeping original content.")
		return content, false, nil
	}
	return out, true, nil
}
