package app

import (
	"errors"
	"fmt"
)

// Commands understood by App.Run.
const (
	CommandBuild  = "build"
	CommandBundle = "bundle"
)

// Config holds all the necessary configuration for an App instance to run.
// Transform settings left empty fall back to the configuration file, then to
// the library defaults.
type Config struct {
	Command    string
	ConfigPath string // explicit svgsprite.hcl / .yaml; discovered in Root otherwise
	Root       string

	// build
	OutDir     string
	SpritePath string

	// bundle
	Entry   string
	Outfile string

	// overrides
	Include     []string
	SymbolID    string
	NoSvgo      bool
	Runtime     string
	OnDuplicate string

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("WorkerCount must be positive, got %d", cfg.WorkerCount)
	}

	switch cfg.Command {
	case CommandBuild:
		if cfg.OutDir == "" {
			return nil, errors.New("OutDir is a required configuration field for build and cannot be empty")
		}
	case CommandBundle:
		if cfg.Entry == "" || cfg.Outfile == "" {
			return nil, errors.New("Entry and Outfile are required configuration fields for bundle")
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	return &cfg, nil
}
