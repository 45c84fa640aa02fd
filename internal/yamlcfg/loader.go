// Package yamlcfg provides the YAML implementation of the config.Loader
// interface for `svgsprite.yaml` files. Keys are camelCase: include,
// symbolId, svgo, runtime, onDuplicate.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/svgsprite/internal/config"
	"github.com/specialistvlad/svgsprite/internal/ctxlog"
	"github.com/specialistvlad/svgsprite/internal/optimize"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Include     patterns `yaml:"include"`
	SymbolID    string   `yaml:"symbolId"`
	Svgo        svgo     `yaml:"svgo"`
	Runtime     string   `yaml:"runtime"`
	OnDuplicate string   `yaml:"onDuplicate"`
}

// patterns accepts a scalar or a sequence of strings.
type patterns []string

func (p *patterns) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*p = nil
			return nil
		}
		*p = patterns{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("line %d: include must be a list of strings: %w", node.Line, err)
		}
		*p = list
		return nil
	default:
		return fmt.Errorf("line %d: include must be a string or a list of strings", node.Line)
	}
}

// svgo accepts a bool or a mapping of optimizer settings.
type svgo struct {
	setting optimize.Setting
}

type svgoMapping struct {
	Precision    int  `yaml:"precision"`
	KeepComments bool `yaml:"keepComments"`
}

func (s *svgo) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			s.setting = optimize.EnabledDefault()
			return nil
		}
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("line %d: svgo must be a bool or a mapping: %w", node.Line, err)
		}
		s.setting = optimize.FromBool(enabled)
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if key := node.Content[i].Value; key != "precision" && key != "keepComments" {
				return fmt.Errorf("line %d: %q is not a known svgo setting; expected precision or keepComments", node.Content[i].Line, key)
			}
		}
		var m svgoMapping
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("line %d: invalid svgo settings: %w", node.Line, err)
		}
		if m.Precision < 0 {
			return fmt.Errorf("line %d: svgo precision must not be negative", node.Line)
		}
		s.setting = optimize.EnabledWith(optimize.Config{Precision: m.Precision, KeepComments: m.KeepComments})
		return nil
	default:
		return fmt.Errorf("line %d: svgo must be a bool or a mapping", node.Line)
	}
}

// Load reads and decodes a single YAML configuration file. Unknown keys are
// rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding YAML config file.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	model := &config.Model{
		Include:     []string(root.Include),
		SymbolID:    root.SymbolID,
		Svgo:        root.Svgo.setting,
		Runtime:     root.Runtime,
		OnDuplicate: root.OnDuplicate,
	}
	logger.Debug("Successfully decoded YAML config file.", "path", path, "include", model.Include, "svgo", model.Svgo.String())
	return model, nil
}
