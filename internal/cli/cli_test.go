package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/svgsprite/internal/app"
)

func TestParse_Build(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"build", "assets",
		"--out", "dist",
		"--sprite", "dist/sprite.svg",
		"-c", "svgsprite.yaml",
		"--include", "icons/**/*.svg",
		"--include", "logos/*.svg",
		"--symbol-id", "icon-[name]",
		"--no-svgo",
		"--runtime", "my/runtime",
		"--on-duplicate", "warn",
		"--workers", "3",
		"--log-level", "DEBUG",
		"--log-format", "json",
	}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	want := &app.Config{
		Command:     app.CommandBuild,
		ConfigPath:  "svgsprite.yaml",
		Root:        "assets",
		OutDir:      "dist",
		SpritePath:  "dist/sprite.svg",
		Include:     []string{"icons/**/*.svg", "logos/*.svg"},
		SymbolID:    "icon-[name]",
		NoSvgo:      true,
		Runtime:     "my/runtime",
		OnDuplicate: "warn",
		LogFormat:   "json",
		LogLevel:    "debug",
		WorkerCount: 3,
	}
	require.Equal(t, want, cfg)
}

func TestParse_BuildDefaults(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{"build", "-o", "dist"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, ".", cfg.Root)
	require.Equal(t, 10, cfg.WorkerCount)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.False(t, cfg.NoSvgo)
	require.Empty(t, cfg.Include)
}

func TestParse_Bundle(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{"bundle", "src/main.js", "--outfile", "dist/app.js"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, app.CommandBundle, cfg.Command)
	require.Equal(t, "src/main.js", cfg.Entry)
	require.Equal(t, "dist/app.js", cfg.Outfile)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "help flag", args: []string{"-h"}},
		{name: "subcommand help", args: []string{"build", "--help"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)
			require.NoError(t, err)
			require.True(t, shouldExit)
			require.Nil(t, cfg)
			require.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown flag", args: []string{"build", "-o", "dist", "--bogus"}, wantErr: "unknown flag: --bogus"},
		{name: "unknown command", args: []string{"serve"}, wantErr: "unknown command"},
		{name: "missing out", args: []string{"build"}, wantErr: `required flag(s) "out" not set`},
		{name: "too many roots", args: []string{"build", "a", "b", "-o", "dist"}, wantErr: "accepts at most 1 arg"},
		{name: "bundle without entry", args: []string{"bundle", "--outfile", "x.js"}, wantErr: "accepts 1 arg"},
		{name: "bad log format", args: []string{"build", "-o", "dist", "--log-format", "xml"}, wantErr: "invalid log-format"},
		{name: "bad log level", args: []string{"build", "-o", "dist", "--log-level", "trace"}, wantErr: "invalid log-level"},
		{name: "bad duplicate policy", args: []string{"build", "-o", "dist", "--on-duplicate", "ignore"}, wantErr: "invalid on-duplicate"},
		{name: "no workers", args: []string{"build", "-o", "dist", "--workers", "0"}, wantErr: "WorkerCount must be positive"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.Nil(t, cfg)
			require.False(t, shouldExit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
			require.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}
