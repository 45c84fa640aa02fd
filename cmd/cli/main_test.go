package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/svgsprite/internal/cli"
)

func TestRun_Build(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	icon := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M6 6l12 12"/></svg>`
	require.NoError(t, os.MkdirAll(filepath.Join(root, "icons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "icons", "close.svg"), []byte(icon), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "svgsprite.hcl"), []byte(`symbol_id = "icon-[name]"`), 0o600))

	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), logs, []string{"build", root, "--out", out})

	// --- Assert ---
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(out, "icons", "close.svg.js"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"icon-close"`)
	require.Contains(t, logs.String(), "Build finished.")
}

func TestRun_ConfigError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL file with a syntax error must surface as an ordinary error.
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "svgsprite.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`include = [`), 0o600))

	// --- Act ---
	runErr := run(context.Background(), &bytes.Buffer{}, []string{"build", tempDir, "-o", t.TempDir()})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to load configuration")
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
