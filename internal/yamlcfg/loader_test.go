package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/svgsprite/internal/optimize"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svgsprite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	type view struct {
		Include     []string
		SymbolID    string
		Svgo        string
		Runtime     string
		OnDuplicate string
	}

	testCases := []struct {
		name string
		yaml string
		want view
	}{
		{
			name: "empty file",
			yaml: "",
			want: view{Svgo: optimize.EnabledDefault().String()},
		},
		{
			name: "all keys",
			yaml: `
include:
  - icons/**/*.svg
  - .hidden/*.svg
symbolId: icon-[name]-[hash]
svgo:
  precision: 2
  keepComments: true
runtime: svgsprite/runtime
onDuplicate: error
`,
			want: view{
				Include:     []string{"icons/**/*.svg", ".hidden/*.svg"},
				SymbolID:    "icon-[name]-[hash]",
				Svgo:        optimize.EnabledWith(optimize.Config{Precision: 2, KeepComments: true}).String(),
				Runtime:     "svgsprite/runtime",
				OnDuplicate: "error",
			},
		},
		{
			name: "scalar include and disabled svgo",
			yaml: "include: '**.svg'\nsvgo: false\n",
			want: view{Include: []string{"**.svg"}, Svgo: optimize.Disabled().String()},
		},
		{
			name: "svgo true",
			yaml: "svgo: true\n",
			want: view{Svgo: optimize.EnabledDefault().String()},
		},
		{
			name: "svgo null",
			yaml: "svgo: ~\n",
			want: view{Svgo: optimize.EnabledDefault().String()},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, err := NewLoader().Load(context.Background(), writeYAML(t, tc.yaml))
			require.NoError(t, err)

			got := view{
				Include:     m.Include,
				SymbolID:    m.SymbolID,
				Svgo:        m.Svgo.String(),
				Runtime:     m.Runtime,
				OnDuplicate: m.OnDuplicate,
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("model mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_LoadErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "unknown key", yaml: "exclude: '*.png'\n", wantErr: "field exclude not found"},
		{name: "svgo string", yaml: "svgo: maybe\n", wantErr: "svgo must be a bool or a mapping"},
		{name: "svgo sequence", yaml: "svgo: [1]\n", wantErr: "svgo must be a bool or a mapping"},
		{name: "svgo unknown setting", yaml: "svgo:\n  multipass: true\n", wantErr: "not a known svgo setting"},
		{name: "svgo negative precision", yaml: "svgo:\n  precision: -3\n", wantErr: "must not be negative"},
		{name: "include mapping", yaml: "include:\n  a: b\n", wantErr: "include must be a string or a list"},
		{name: "malformed", yaml: "include: [\n", wantErr: "failed to decode YAML file"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewLoader().Load(context.Background(), writeYAML(t, tc.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_LoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
