package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "build", cfg: Config{Command: CommandBuild, OutDir: "dist", WorkerCount: 1}},
		{name: "bundle", cfg: Config{Command: CommandBundle, Entry: "main.js", Outfile: "out.js", WorkerCount: 1}},
		{name: "build without out", cfg: Config{Command: CommandBuild, WorkerCount: 1}, wantErr: "OutDir"},
		{name: "bundle without outfile", cfg: Config{Command: CommandBundle, Entry: "main.js", WorkerCount: 1}, wantErr: "Outfile"},
		{name: "no workers", cfg: Config{Command: CommandBuild, OutDir: "dist"}, wantErr: "WorkerCount"},
		{name: "unknown command", cfg: Config{Command: "serve", WorkerCount: 1}, wantErr: "unknown command"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, ".", got.Root, "an empty root defaults to the working directory")
		})
	}
}
