package app

import (
	"github.com/specialistvlad/svgsprite/internal/config"
	"github.com/specialistvlad/svgsprite/internal/hcl"
	"github.com/specialistvlad/svgsprite/internal/yamlcfg"
)

// DefaultLoaders returns the configuration loaders for every supported
// file format, keyed by extension.
func DefaultLoaders() config.Loaders {
	yamlLoader := yamlcfg.NewLoader()
	return config.Loaders{
		".hcl":  hcl.NewLoader(),
		".yaml": yamlLoader,
		".yml":  yamlLoader,
	}
}
