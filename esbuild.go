package svgsprite

import (
	"context"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/specialistvlad/svgsprite/internal/ctxlog"
)

// Esbuild returns the plugin in esbuild's form. ctx is used for logging and
// cancellation of every load the plugin performs.
//
// Files outside the include patterns get an empty OnLoadResult, which lets
// esbuild fall through to its own loaders.
func (p *Plugin) Esbuild(ctx context.Context) api.Plugin {
	return api.Plugin{
		Name: Name,
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: "file"}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				res, err := p.pipeline.Transform(ctx, "", args.Path)
				if err != nil {
					return api.OnLoadResult{}, err
				}
				if res == nil {
					return api.OnLoadResult{}, nil
				}

				ctxlog.FromContext(ctx).Debug("esbuild load handled.", "path", args.Path, "id", res.ID)
				return api.OnLoadResult{
					PluginName: Name,
					Contents:   &res.Code,
					Loader:     api.LoaderJS,
					ResolveDir: filepath.Dir(args.Path),
					WatchFiles: []string{args.Path},
				}, nil
			})
		},
	}
}
