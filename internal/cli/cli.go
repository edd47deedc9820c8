// Package cli provides command-line interface functionality for regexoracle.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/AndreyAkinshin/regexoracle/internal/config"
	"github.com/AndreyAkinshin/regexoracle/internal/ctxlog"
	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/output"
)

// Version is set at build time.
var Version = "dev"

// Help text alignment widths for consistent formatting.
const (
	helpCommandWidth = 16
	helpFlagWidth    = 22
)

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return run(context.Background(), args, output.New())
}

func run(ctx context.Context, args []string, w *output.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			printUsage(w)
			return errors.ExitSuccess
		case "--version", "version":
			w.Println("regexoracle %s", Version)
			return errors.ExitSuccess
		}
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	w.SetQuiet(opts.Quiet)
	ctx = ctxlog.WithLogger(ctx, ctxlog.New(w.Err(), opts.logLevel()))

	// verify is the default command
	cmd := "verify"
	var cmdArgs []string
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		cmd = remaining[0]
		cmdArgs = remaining[1:]
	} else {
		cmdArgs = remaining
	}

	switch cmd {
	case "verify":
		return cmdVerify(ctx, w, cmdArgs, opts)
	case "report":
		return cmdReport(w, cmdArgs, opts)
	case "help":
		printUsage(w)
		return errors.ExitSuccess
	case "version":
		w.Println("regexoracle %s", Version)
		return errors.ExitSuccess
	default:
		w.ErrorPrefix("unknown command %q", cmd)
		w.Hint("run 'regexoracle help' for usage")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	ConfigPath string
}

func (o *GlobalOptions) logLevel() slog.Level {
	switch {
	case o.Verbose:
		return slog.LevelDebug
	case o.Quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// parseGlobalFlags extracts global flags from anywhere before a -- separator
// and returns the remaining arguments in order.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			opts.ConfigPath = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			i++
		case arg == "--":
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if opts.Quiet && opts.Verbose {
		return nil, nil, fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	if opts.ConfigPath == "" && hasFlag(args, "--config=") {
		return nil, nil, fmt.Errorf("--config requires a value")
	}
	return opts, remaining, nil
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == flag {
			return true
		}
	}
	return false
}

// loadConfig reads the configuration named by --config, or regexoracle.yaml
// when present in the working directory, or falls back to defaults.
func loadConfig(w *output.Writer, opts *GlobalOptions) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			return config.Default(), nil
		}
		path = config.DefaultFile
	}

	cfg, warnings, err := config.Load(path)
	for _, warning := range warnings {
		w.Warning("%s: %s", path, warning)
	}
	if err != nil {
		return nil, errors.Configf("%s: %v", path, err)
	}
	return cfg, nil
}

func printUsage(w *output.Writer) {
	w.HelpTitle("regexoracle - re-verify regex test expectations against a reference engine")

	w.HelpSection("Usage:")
	w.HelpUsage("regexoracle [global flags] [command] [flags]")

	w.HelpSection("Commands:")
	w.HelpCommand("verify", "Verify validate and match cases (default)", helpCommandWidth)
	w.HelpCommand("report [files]", "Print a table of one or more results files", helpCommandWidth)
	w.HelpCommand("version", "Show version information", helpCommandWidth)
	w.HelpCommand("help", "Show this help", helpCommandWidth)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("regexoracle > tests/results-python.json", "Verify test/regex_test.jsonnet with the jsonnet binary")
	w.HelpExample("regexoracle verify --source jsonnet --format jcs", "Evaluate in-process and emit canonical JSON")
	w.HelpExample("regexoracle report tests/results.json tests/results-python.json", "Show both result sets side by side")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Errors only", helpFlagWidth)
	w.HelpFlag("-v, --verbose", "Debug logging on stderr", helpFlagWidth)
	w.HelpFlag("--config <file>", "Configuration file (default: "+config.DefaultFile+" if present)", helpFlagWidth)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidth)
	w.HelpFlag("--version", "Show version", helpFlagWidth)
}
