package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/svgsprite/internal/optimize"
)

// DefaultFileNames are looked up, in order, when no configuration file is
// given explicitly.
var DefaultFileNames = []string{"svgsprite.hcl", "svgsprite.yaml", "svgsprite.yml"}

// ErrUnsupportedFormat is returned when no Loader handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Model is the unified, format-agnostic representation of a configuration
// file. Unset fields keep their zero value and mean "use the default".
type Model struct {
	Include     []string
	SymbolID    string
	Svgo        optimize.Setting
	Runtime     string
	OnDuplicate string
	// Source is the file the model was loaded from, empty for defaults.
	Source string
}

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the file at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}

// Loaders maps a lower-case file extension (".hcl") to its Loader.
type Loaders map[string]Loader

// Load picks the loader registered for path's extension.
func (ls Loaders) Load(ctx context.Context, path string) (*Model, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := ls[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	m, err := l.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	m.Source = path
	return m, nil
}

// Discover returns the first of DefaultFileNames present in dir, or "" when
// there is none.
func Discover(dir string) (string, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to inspect %s: %w", path, err)
		}
	}
	return "", nil
}
