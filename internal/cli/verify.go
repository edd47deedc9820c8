package cli

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/regexoracle/internal/config"
	"github.com/AndreyAkinshin/regexoracle/internal/ctxlog"
	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
	"github.com/AndreyAkinshin/regexoracle/internal/output"
	"github.com/AndreyAkinshin/regexoracle/internal/report"
	"github.com/AndreyAkinshin/regexoracle/internal/source"
)

// verifyOptions holds flags of the verify command.
type verifyOptions struct {
	config.Overrides
	Strict bool
}

func parseVerifyFlags(args []string) (*verifyOptions, error) {
	opts := &verifyOptions{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--strict" {
			opts.Strict = true
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		var target *string
		switch name {
		case "--source":
			target = &opts.Source
		case "--input":
			target = &opts.Input
		case "--engine":
			target = &opts.Engine
		case "--format":
			target = &opts.Format
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("verify: unknown flag %s", arg)
			}
			return nil, fmt.Errorf("verify: unexpected argument %s", arg)
		}

		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("verify: %s requires a value", name)
			}
			i++
			value = args[i]
		}
		if value == "" {
			return nil, fmt.Errorf("verify: %s requires a value", name)
		}
		*target = value
	}
	return opts, nil
}

// cmdVerify loads the test document, re-verifies every case and writes the
// summary to stdout. A load failure still produces a summary; under --strict
// a missing evaluator exits with ExitEnvironmentError instead of failing like
// a broken document.
func cmdVerify(ctx context.Context, w *output.Writer, args []string, global *GlobalOptions) int {
	if wantsHelp(args) {
		printVerifyUsage(w)
		return errors.ExitSuccess
	}

	opts, err := parseVerifyFlags(args)
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	cfg, err := loadConfig(w, global)
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	if err := cfg.Apply(opts.Overrides); err != nil {
		w.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	verifier, err := cfg.NewVerifier()
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	ctxlog.FromContext(ctx).Debug("Starting verification",
		"source", cfg.Source.Kind,
		"engine", cfg.Engine.Name,
		"flags", cfg.Engine.Flags,
		"policy", cfg.Verify.MissingExpectation)

	summary, loadErr := oracle.Run(ctx, cfg.Loader(), verifier)

	if err := report.Encode(w.Out(), summary, cfg.Output.Format); err != nil {
		w.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	if !opts.Strict {
		return errors.ExitSuccess
	}
	if errors.IsLoadFailure(loadErr) && errors.IsMissingEvaluator(loadErr) {
		envErr := errors.Environment(fmt.Sprintf("evaluator not found: %v", loadErr), loadErr)
		w.ErrorPrefix("%v", envErr)
		w.Hint("install it or point source.command at it; --source jsonnet evaluates in-process")
		return envErr.ExitCode()
	}
	if summary.Failed > 0 {
		return errors.ExitRuntimeError
	}
	return errors.ExitSuccess
}

func printVerifyUsage(w *output.Writer) {
	w.HelpTitle("regexoracle verify - re-verify regex test expectations")

	w.HelpSection("Usage:")
	w.HelpUsage("regexoracle verify [flags]")

	w.HelpSection("Description:")
	w.Println("  Loads the validate and match blocks of the test document, checks every")
	w.Println("  case against the reference engine and prints a JSON summary on stdout.")
	w.Println("  A document that cannot be loaded is reported as a single failing case.")

	w.HelpSection("Flags:")
	w.HelpFlag("--source <kind>", "exec, jsonnet or file (default: exec)", helpFlagWidth)
	w.HelpFlag("--input <path>", "Test document (default: "+source.DefaultInput+")", helpFlagWidth)
	w.HelpFlag("--engine <name>", "regexp2 or re2 (default: regexp2)", helpFlagWidth)
	w.HelpFlag("--format <format>", "json or jcs (default: json)", helpFlagWidth)
	w.HelpFlag("--strict", "Exit 1 when any case failed, 3 when the evaluator is missing", helpFlagWidth)

	w.HelpSection("Examples:")
	titleCase := cases.Title(language.English)
	for _, kind := range []string{source.KindExec, source.KindJsonnet, source.KindFile} {
		w.HelpExample(fmt.Sprintf("regexoracle verify --source %s", kind), fmt.Sprintf("%s source", titleCase.String(kind)))
	}
	w.Println("")
}
