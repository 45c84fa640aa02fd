package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	model *Model
}

func (s stubLoader) Load(context.Context, string) (*Model, error) {
	m := *s.model
	return &m, nil
}

func TestLoaders_Load(t *testing.T) {
	t.Parallel()

	loaders := Loaders{".hcl": stubLoader{model: &Model{SymbolID: "[name]"}}}

	m, err := loaders.Load(context.Background(), "conf/SVGSPRITE.HCL")
	require.NoError(t, err)
	require.Equal(t, "[name]", m.SymbolID)
	require.Equal(t, "conf/SVGSPRITE.HCL", m.Source)

	_, err = loaders.Load(context.Background(), "svgsprite.toml")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path, err := Discover(dir)
	require.NoError(t, err)
	require.Empty(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "svgsprite.yml"), []byte("symbolId: x\n"), 0600))
	path, err = Discover(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "svgsprite.yml"), path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "svgsprite.hcl"), []byte(""), 0600))
	path, err = Discover(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "svgsprite.hcl"), path)
}
