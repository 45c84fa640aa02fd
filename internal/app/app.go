package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/svgsprite"
	"github.com/specialistvlad/svgsprite/internal/config"
	"github.com/specialistvlad/svgsprite/internal/ctxlog"
	"github.com/specialistvlad/svgsprite/internal/symbol"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *config.Model
	plugin *svgsprite.Plugin
}

// NewApp is the constructor for the main application. It loads the
// configuration file through loaders, applies the overrides in cfg and
// builds the plugin every command shares.
func NewApp(outW io.Writer, cfg *Config, loaders config.Loaders) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loadModel(ctx, cfg, loaders)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded.", "source", model.Source)

	opts, err := cfg.options(model)
	if err != nil {
		return nil, err
	}

	plugin, err := svgsprite.New(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid plugin options: %w", err)
	}
	logger.Debug("Plugin configured.",
		"include", opts.Include,
		"symbol_id", opts.SymbolID,
		"svgo", opts.Svgo.String(),
		"runtime", plugin.Runtime(),
		"on_duplicate", opts.OnDuplicate.String(),
	)

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		model:  model,
		plugin: plugin,
	}, nil
}

// Plugin returns the application's plugin. This is primarily for testing.
func (a *App) Plugin() *svgsprite.Plugin {
	return a.plugin
}

// loadModel reads the explicit configuration file, or the first default file
// found in the root directory. No file at all yields an empty model.
func loadModel(ctx context.Context, cfg *Config, loaders config.Loaders) (*config.Model, error) {
	path := cfg.ConfigPath
	if path == "" {
		found, err := config.Discover(cfg.Root)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		ctxlog.FromContext(ctx).Debug("No configuration file found, using defaults.", "root", cfg.Root)
		return &config.Model{}, nil
	}
	return loaders.Load(ctx, path)
}

// options merges the file model with the command-line overrides.
func (c *Config) options(m *config.Model) (svgsprite.Options, error) {
	opts := svgsprite.Options{
		Include:  m.Include,
		SymbolID: m.SymbolID,
		Svgo:     m.Svgo,
		Runtime:  m.Runtime,
		Root:     c.Root,
	}
	policy := m.OnDuplicate

	if len(c.Include) > 0 {
		opts.Include = c.Include
	}
	if c.SymbolID != "" {
		opts.SymbolID = c.SymbolID
	}
	if c.NoSvgo {
		opts.Svgo = svgsprite.SvgoDisabled()
	}
	if c.Runtime != "" {
		opts.Runtime = c.Runtime
	}
	if c.OnDuplicate != "" {
		policy = c.OnDuplicate
	}

	var err error
	if opts.OnDuplicate, err = symbol.ParseDuplicatePolicy(policy); err != nil {
		return opts, err
	}
	return opts, nil
}
