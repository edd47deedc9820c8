package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/output"
	"github.com/AndreyAkinshin/regexoracle/internal/report"
)

func TestReport(t *testing.T) {
	t.Parallel()
	primary := writeTemp(t, "results.json", `{"cases":[
		{"name":"plus","pass":true,"got":true,"want":true},
		{"name":"unclosed group","pass":false,"got":true,"want":false}
	]}`)
	reference := writeTemp(t, "results-python.json", `{"cases":[
		{"name":"unclosed group (python)","pass":true,"got":{"err":"missing )"},"want":false},
		{"name":"plus (python)","pass":true,"got":true,"want":true}
	]}`)

	code, stdout, stderr := runCLI(t, "report", primary, reference)
	if code != errors.ExitRuntimeError {
		t.Errorf("run() = %d, want %d (stderr: %s)", code, errors.ExitRuntimeError, stderr)
	}

	want := strings.Join([]string{
		"Test                     Result  Details",
		"-----------------------  ------  -------------------",
		"plus                     ✔ Pass  ",
		"plus (python)            ✔ Pass  ",
		"unclosed group           ✖ Fail  got=true want=false",
		"unclosed group (python)  ✔ Pass  ",
		"",
		"=== Summary ===",
		"",
		"  Total: 4",
		"  Passed: 3",
		"  Failed: 1",
		"",
		"1 of 4 case(s) failed",
		"",
	}, "\n")
	if stdout != want {
		t.Errorf("report output =\n%s\nwant\n%s", stdout, want)
	}
}

func TestPrintReport_Color(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	w := output.NewWithWriters(&out, io.Discard, true)

	printReport(w, report.Report{
		Rows: []report.Row{
			{Name: "ok", Pass: true},
			{Name: "bad", Pass: false, Details: "got=true want=false"},
		},
		Total: 2, Passed: 1, Failed: 1,
	})

	lines := strings.Split(out.String(), "\n")
	if got, want := lines[2], "ok    \033[32m✔ Pass\033[0m  "; got != want {
		t.Errorf("passing row = %q, want %q", got, want)
	}
	if got, want := lines[3], "bad   \033[31m✖ Fail\033[0m  \033[31mgot=true want=false\033[0m"; got != want {
		t.Errorf("failing row = %q, want %q", got, want)
	}
}

func TestReport_AllPassed(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "results.json", `{"cases":[{"name":"x (go)","pass":true}],"total":1,"passed":1,"failed":0}`)

	code, stdout, _ := runCLI(t, "report", "--label=go", path)
	if code != errors.ExitSuccess {
		t.Errorf("run() = %d, want 0", code)
	}
	if !strings.Contains(stdout, "All 1 case(s) passed") {
		t.Errorf("stdout = %q, want success line", stdout)
	}
}

func TestReport_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing file", []string{"report", filepath.Join(t.TempDir(), "none.json")}, "failed to read or parse results file"},
		{"bad json", []string{"report", writeTemp(t, "bad.json", "{")}, "failed to read or parse results file"},
		{"label without value", []string{"report", "--label"}, "--label requires a value"},
		{"unknown flag", []string{"report", "--wide"}, "unknown flag --wide"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, _, stderr := runCLI(t, tt.args...)
			if code != errors.ExitConfigError {
				t.Errorf("run() = %d, want %d", code, errors.ExitConfigError)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantErr)
			}
		})
	}
}
