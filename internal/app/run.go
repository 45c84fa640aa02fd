package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/evanw/esbuild/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/svgsprite/internal/ctxlog"
	"github.com/specialistvlad/svgsprite/internal/fsutil"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case CommandBuild:
		err = a.Build(ctx)
	case CommandBundle:
		err = a.Bundle(ctx)
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// Build transforms every matched file under the root directory into
// <out>/<rel>.js, using at most WorkerCount concurrent transforms. When a
// sprite path is configured the combined sprite document is written last.
func (a *App) Build(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	root := a.config.Root

	files, err := fsutil.FindFiles(root, a.plugin.Matches)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No matching files found, nothing to build.", "root", root)
		return a.writeSprite()
	}

	a.logger.Info("🚀 Starting build...", "files", len(files), "workers", a.config.WorkerCount)

	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := a.buildFile(gctx, path)
			if ok {
				written.Add(1)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if err := a.writeSprite(); err != nil {
		return err
	}

	a.logger.Info("🏁 Build finished.", "modules", written.Load(), "symbols", a.plugin.Symbols())
	return nil
}

func (a *App) buildFile(ctx context.Context, path string) (bool, error) {
	code, ok, err := a.plugin.Transform(ctx, "", path)
	if err != nil || !ok {
		return false, err
	}

	rel, err := filepath.Rel(a.config.Root, path)
	if err != nil {
		return false, fmt.Errorf("failed to relativize %s: %w", path, err)
	}
	out := filepath.Join(a.config.OutDir, rel+".js")
	if err := writeFile(out, code); err != nil {
		return false, err
	}

	ctxlog.FromContext(ctx).Debug("Module written.", "path", path, "out", out)
	return true, nil
}

// Bundle runs esbuild on the entry point with the plugin installed. The
// runtime import stays external so the host application provides it.
func (a *App) Bundle(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Info("🚀 Starting bundle...", "entry", a.config.Entry, "outfile", a.config.Outfile)

	result := api.Build(api.BuildOptions{
		EntryPoints: []string{a.config.Entry},
		Outfile:     a.config.Outfile,
		Bundle:      true,
		Write:       true,
		Format:      api.FormatESModule,
		External:    []string{a.plugin.Runtime()},
		Plugins:     []api.Plugin{a.plugin.Esbuild(ctx)},
		LogLevel:    api.LogLevelSilent,
	})

	for _, w := range result.Warnings {
		a.logger.Warn("esbuild warning.", "text", w.Text, "file", messageFile(w))
	}
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			if file := messageFile(e); file != "" {
				msgs = append(msgs, file+": "+e.Text)
			} else {
				msgs = append(msgs, e.Text)
			}
		}
		return fmt.Errorf("bundle %s failed: %s", a.config.Entry, strings.Join(msgs, "; "))
	}

	if err := a.writeSprite(); err != nil {
		return err
	}

	a.logger.Info("🏁 Bundle finished.", "outfile", a.config.Outfile, "symbols", a.plugin.Symbols())
	return nil
}

func (a *App) writeSprite() error {
	if a.config.SpritePath == "" {
		return nil
	}
	sprite, err := a.plugin.Sprite()
	if err != nil {
		return fmt.Errorf("failed to render sprite: %w", err)
	}
	if err := writeFile(a.config.SpritePath, sprite); err != nil {
		return err
	}
	a.logger.Info("Sprite written.", "path", a.config.SpritePath, "symbols", a.plugin.Symbols())
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func messageFile(m api.Message) string {
	if m.Location == nil {
		return ""
	}
	return m.Location.File
}
