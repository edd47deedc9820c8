package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"testing"
)

func TestOracleError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OracleError
		expected string
	}{
		{
			name:     "message only",
			err:      &OracleError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "process failure",
			err:      &OracleError{Kind: KindProcess, Tool: "jsonnet", Message: "exit status 1"},
			expected: "failed to run jsonnet: exit status 1",
		},
		{
			name:     "parse failure",
			err:      &OracleError{Kind: KindParse, Message: "unexpected end of JSON input"},
			expected: "failed to parse json: unexpected end of JSON input",
		},
		{
			name:     "read failure",
			err:      Read("cases/doc.json", fs.ErrNotExist),
			expected: "failed to read cases/doc.json: file does not exist",
		},
		{
			name:     "tool ignored for config errors",
			err:      &OracleError{Kind: KindConfig, Tool: "jsonnet", Message: "bad config"},
			expected: "bad config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOracleError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &OracleError{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &OracleError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestOracleError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitRuntimeError},
		{"config", KindConfig, ExitConfigError},
		{"environment", KindEnvironment, ExitEnvironmentError},
		{"process", KindProcess, ExitRuntimeError},
		{"parse", KindParse, ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &OracleError{Kind: tt.kind}
			if got := err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestEnvironment(t *testing.T) {
	cause := Process("jsonnet", exec.ErrNotFound, exec.ErrNotFound.Error())
	err := Environment("evaluator is not installed", cause)

	if err.ExitCode() != ExitEnvironmentError {
		t.Errorf("ExitCode() = %d, want %d", err.ExitCode(), ExitEnvironmentError)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Error("errors.Is should find exec.ErrNotFound through the process error")
	}
	if err.Error() != "evaluator is not installed" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestConfigf(t *testing.T) {
	err := Configf("field %q: %s", "engine.name", "is required")

	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConfig)
	}
	expected := `field "engine.name": is required`
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
	if err.ExitCode() != ExitConfigError {
		t.Errorf("ExitCode() = %d, want %d", err.ExitCode(), ExitConfigError)
	}
}

func TestProcess(t *testing.T) {
	cause := errors.New("exec: \"jsonnet\": executable file not found in $PATH")
	err := Process("jsonnet", cause, cause.Error())

	if err.Kind != KindProcess {
		t.Errorf("Kind = %v, want %v", err.Kind, KindProcess)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	expected := "failed to run jsonnet: exec: \"jsonnet\": executable file not found in $PATH"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestIsLoadFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"process", Process("jsonnet", nil, "boom"), true},
		{"parse", Parse(nil, "boom"), true},
		{"read", Read("doc.json", fs.ErrNotExist), true},
		{"wrapped parse", fmt.Errorf("load: %w", Parse(nil, "boom")), true},
		{"config", Config("boom"), false},
		{"generic", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLoadFailure(tt.err); got != tt.want {
				t.Errorf("IsLoadFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsMissingEvaluator(t *testing.T) {
	notFound := &exec.Error{Name: "jsonnet", Err: exec.ErrNotFound}
	noPath := &fs.PathError{Op: "fork/exec", Path: "/no/such/jsonnet", Err: fs.ErrNotExist}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not in PATH", Process("jsonnet", notFound, notFound.Error()), true},
		{"no such path", Process("/no/such/jsonnet", noPath, noPath.Error()), true},
		{"wrapped", fmt.Errorf("load: %w", Process("jsonnet", notFound, "x")), true},
		{"non-zero exit", Process("jsonnet", errors.New("exit status 1"), "exit status 1"), false},
		{"unreadable document", Parse(noPath, "x"), false},
		{"bare exec error", notFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMissingEvaluator(tt.err); got != tt.want {
				t.Errorf("IsMissingEvaluator() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"OracleError runtime", &OracleError{Kind: KindRuntime, Message: "runtime"}, ExitRuntimeError},
		{"OracleError config", Config("config"), ExitConfigError},
		{"OracleError environment", Environment("env", nil), ExitEnvironmentError},
		{"wrapped config", fmt.Errorf("outer: %w", Config("config")), ExitConfigError},
		{"generic error", errors.New("generic"), ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
