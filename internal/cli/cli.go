package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/svgsprite/internal/app"
	"github.com/specialistvlad/svgsprite/internal/symbol"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// sharedFlags are accepted by every command.
type sharedFlags struct {
	configPath  string
	include     []string
	symbolID    string
	noSvgo      bool
	runtime     string
	onDuplicate string
	workers     int
	logLevel    string
	logFormat   string
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		shared sharedFlags
		parsed *app.Config
	)

	rootCmd := &cobra.Command{
		Use:   "svgsprite",
		Short: "svgsprite - turn SVG files into sprite-registering JavaScript modules",
		Long: `svgsprite replaces every matched SVG file with a small JavaScript module
that registers the file as a <symbol> in a shared sprite and exports its id.

Configuration is read from svgsprite.hcl, svgsprite.yaml or svgsprite.yml in
the root directory unless --config is given. Flags override file values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(output)
	rootCmd.SetErr(output)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&shared.configPath, "config", "c", "", "Path to an svgsprite.hcl or svgsprite.yaml file.")
	pf.StringArrayVar(&shared.include, "include", nil, "Glob pattern selecting the files to transform. Repeatable. Default '**.svg'.")
	pf.StringVar(&shared.symbolID, "symbol-id", "", "Symbol id template; supports [name] and [hash]. Default '[name]'.")
	pf.BoolVar(&shared.noSvgo, "no-svgo", false, "Disable SVG optimization.")
	pf.StringVar(&shared.runtime, "runtime", "", "Import path of the registration runtime. Default 'svgsprite/runtime'.")
	pf.StringVar(&shared.onDuplicate, "on-duplicate", "", "What to do when two files derive the same id: 'overwrite', 'warn' or 'error'.")
	pf.IntVar(&shared.workers, "workers", 10, "Number of concurrent transforms.")
	pf.StringVar(&shared.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&shared.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	rootCmd.AddCommand(
		newBuildCommand(&shared, &parsed),
		newBundleCommand(&shared, &parsed),
	)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if parsed == nil {
		// Help was requested or no command was given.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "command", parsed.Command)
	return parsed, false, nil
}

func newBuildCommand(shared *sharedFlags, parsed **app.Config) *cobra.Command {
	var outDir, sprite string

	cmd := &cobra.Command{
		Use:   "build [ROOT]",
		Short: "Transform every matched file under ROOT into a module",
		Long: `Walk ROOT (default: the working directory), transform every matched file
and write the module for ROOT/<rel> to OUT/<rel>.js. With --sprite the combined
sprite document is written as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config{Command: app.CommandBuild, OutDir: outDir, SpritePath: sprite}
			if len(args) > 0 {
				cfg.Root = args[0]
			}
			return finish(shared, cfg, parsed)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory the modules are written to.")
	cmd.Flags().StringVar(&sprite, "sprite", "", "Also write the combined sprite document to this file.")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newBundleCommand(shared *sharedFlags, parsed **app.Config) *cobra.Command {
	var outfile, sprite string

	cmd := &cobra.Command{
		Use:   "bundle ENTRY",
		Short: "Bundle ENTRY with esbuild, transforming imported SVG files",
		Long: `Bundle ENTRY with esbuild and the svg-sprite plugin installed. The runtime
import is left external for the host application to provide.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config{Command: app.CommandBundle, Entry: args[0], Outfile: outfile, SpritePath: sprite}
			return finish(shared, cfg, parsed)
		},
	}
	cmd.Flags().StringVar(&outfile, "outfile", "", "File the bundle is written to.")
	cmd.Flags().StringVar(&sprite, "sprite", "", "Also write the combined sprite document to this file.")
	_ = cmd.MarkFlagRequired("outfile")
	return cmd
}

// finish validates the shared flags and stores the resulting config.
func finish(shared *sharedFlags, cfg app.Config, parsed **app.Config) error {
	logFormat := strings.ToLower(shared.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(shared.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if _, err := symbol.ParseDuplicatePolicy(shared.onDuplicate); err != nil {
		return &ExitError{Code: 2, Message: "invalid on-duplicate: " + err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg.ConfigPath = shared.configPath
	cfg.Include = shared.include
	cfg.SymbolID = shared.symbolID
	cfg.NoSvgo = shared.noSvgo
	cfg.Runtime = shared.runtime
	cfg.OnDuplicate = shared.onDuplicate
	cfg.WorkerCount = shared.workers
	cfg.LogLevel = logLevel
	cfg.LogFormat = logFormat

	config, err := app.NewConfig(cfg)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	*parsed = config
	return nil
}
