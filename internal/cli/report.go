package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/output"
	"github.com/AndreyAkinshin/regexoracle/internal/report"
)

// cmdReport merges results files and prints them as one table, each
// reference row following the row it shadows.
func cmdReport(w *output.Writer, args []string, global *GlobalOptions) int {
	if wantsHelp(args) {
		printReportUsage(w)
		return errors.ExitSuccess
	}

	label := ""
	var files []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--label":
			if i+1 >= len(args) {
				w.ErrorPrefix("report: --label requires a value")
				return errors.ExitConfigError
			}
			i++
			label = args[i]
		case strings.HasPrefix(arg, "--label="):
			label = strings.TrimPrefix(arg, "--label=")
		case arg == "--":
			files = append(files, args[i+1:]...)
			i = len(args)
		case strings.HasPrefix(arg, "-"):
			w.ErrorPrefix("report: unknown flag %s", arg)
			return errors.ExitConfigError
		default:
			files = append(files, arg)
		}
	}

	if label == "" {
		cfg, err := loadConfig(w, global)
		if err != nil {
			w.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
		label = cfg.Verify.Label
	}

	cases, err := report.ReadFiles(files)
	if err != nil {
		w.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	r := report.Build(cases, label)
	printReport(w, r)

	if r.Failed > 0 {
		return errors.ExitRuntimeError
	}
	return errors.ExitSuccess
}

func printReport(w *output.Writer, r report.Report) {
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.Pass {
			rows = append(rows, []string{row.Name, w.PassText(row.Result()), row.Details})
			continue
		}
		rows = append(rows, []string{row.Name, w.FailText(row.Result()), w.FailText(row.Details)})
	}
	w.Table([]string{"Test", "Result", "Details"}, rows)

	w.SummaryHeader("Summary")
	w.SummaryItem("Total", fmt.Sprintf("%d", r.Total))
	w.SummaryPassed("Passed", fmt.Sprintf("%d", r.Passed))
	if r.Failed > 0 {
		w.SummaryFailed("Failed", fmt.Sprintf("%d", r.Failed))
		w.FinalFailure("%d of %d case(s) failed", r.Failed, r.Total)
	} else {
		w.SummaryItem("Failed", "0")
		w.FinalSuccess("All %d case(s) passed", r.Total)
	}
}

func printReportUsage(w *output.Writer) {
	w.HelpTitle("regexoracle report - print results files as a table")

	w.HelpSection("Usage:")
	w.HelpUsage("regexoracle report [--label <name>] [files...]")

	w.HelpSection("Description:")
	w.Println("  Merges the cases of every file (default: %s) and prints one row", report.DefaultResultsFile)
	w.Println("  per case. Rows named \"<test> (<label>)\" or \"<label>: <test>\" follow")
	w.Println("  the row of the same test. Exits 1 when any case failed and 2 when")
	w.Println("  a file cannot be read or parsed.")

	w.HelpSection("Flags:")
	w.HelpFlag("--label <name>", "Reference label (default: verify.label or python)", helpFlagWidth)
	w.Println("")
}
