package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/svgsprite/internal/optimize"
)

// decodeInclude accepts a single pattern or a list of patterns. Null means
// "not set".
func decodeInclude(v cty.Value, rng hcl.Range) ([]string, hcl.Diagnostics) {
	if v.IsNull() {
		return nil, nil
	}

	if v.Type() == cty.String {
		return []string{v.AsString()}, nil
	}

	list, err := convert.Convert(v, cty.List(cty.String))
	if err != nil {
		return nil, diag(rng, "Invalid include", fmt.Sprintf("include must be a string or a list of strings: %s.", err))
	}

	var patterns []string
	if err := gocty.FromCtyValue(list, &patterns); err != nil {
		return nil, diag(rng, "Invalid include", fmt.Sprintf("include patterns must not be null: %s.", err))
	}
	return patterns, nil
}

// decodeSvgo resolves the bool-or-object shape of the svgo attribute.
func decodeSvgo(v cty.Value, rng hcl.Range) (optimize.Setting, hcl.Diagnostics) {
	if v.IsNull() {
		return optimize.EnabledDefault(), nil
	}

	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return optimize.FromBool(v.True()), nil
	case ty.IsObjectType() || ty.IsMapType():
		cfg, diags := decodeOptimizerConfig(v, rng)
		if diags.HasErrors() {
			return optimize.Setting{}, diags
		}
		return optimize.EnabledWith(cfg), nil
	default:
		return optimize.Setting{}, diag(rng, "Invalid svgo", fmt.Sprintf("svgo must be a bool or an object, got %s.", ty.FriendlyName()))
	}
}

func decodeOptimizerConfig(v cty.Value, rng hcl.Range) (optimize.Config, hcl.Diagnostics) {
	var cfg optimize.Config

	for it := v.ElementIterator(); it.Next(); {
		key, val := it.Element()
		name := key.AsString()

		switch name {
		case "precision":
			num, err := convert.Convert(val, cty.Number)
			if err == nil {
				err = gocty.FromCtyValue(num, &cfg.Precision)
			}
			if err != nil {
				return cfg, diag(rng, "Invalid svgo precision", fmt.Sprintf("precision must be a whole number: %s.", err))
			}
			if cfg.Precision < 0 {
				return cfg, diag(rng, "Invalid svgo precision", "precision must not be negative.")
			}
		case "keep_comments":
			b, err := convert.Convert(val, cty.Bool)
			if err == nil {
				err = gocty.FromCtyValue(b, &cfg.KeepComments)
			}
			if err != nil {
				return cfg, diag(rng, "Invalid svgo keep_comments", fmt.Sprintf("keep_comments must be a bool: %s.", err))
			}
		default:
			return cfg, diag(rng, "Unsupported svgo setting", fmt.Sprintf("%q is not a known svgo setting; expected precision or keep_comments.", name))
		}
	}
	return cfg, nil
}

func diag(rng hcl.Range, summary, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}}
}
