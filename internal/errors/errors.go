// Package errors provides structured error types and exit codes for regexoracle.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (failed cases under --strict, failed report rows, etc.)
	ExitConfigError      = 2 // Configuration, usage or unreadable input error
	ExitEnvironmentError = 3 // Evaluator not installed (verify --strict)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindEnvironment
	// KindProcess covers an evaluator that cannot be started or exits non-zero.
	KindProcess
	// KindParse covers evaluator output that is not the expected JSON document.
	KindParse
	// KindRead covers a pre-rendered document that cannot be read.
	KindRead
)

// OracleError is the base error type for regexoracle.
type OracleError struct {
	Kind    ErrorKind
	Message string
	Tool    string // Evaluator name for process errors, file path for read errors
	Cause   error  // Underlying error
}

func (e *OracleError) Error() string {
	switch e.Kind {
	case KindProcess:
		return fmt.Sprintf("failed to run %s: %s", e.Tool, e.Message)
	case KindParse:
		return fmt.Sprintf("failed to parse json: %s", e.Message)
	case KindRead:
		return fmt.Sprintf("failed to read %s: %s", e.Tool, e.Message)
	}
	return e.Message
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *OracleError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// Config creates a new configuration error.
func Config(message string) *OracleError {
	return &OracleError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *OracleError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error caused by err.
func Environment(message string, err error) *OracleError {
	return &OracleError{
		Kind:    KindEnvironment,
		Message: message,
		Cause:   err,
	}
}

// Process creates an evaluator failure for tool, rendered as "failed to run <tool>: <detail>".
func Process(tool string, cause error, detail string) *OracleError {
	return &OracleError{
		Kind:    KindProcess,
		Tool:    tool,
		Message: detail,
		Cause:   cause,
	}
}

// Parse creates a malformed-output failure, rendered as "failed to parse json: <detail>".
func Parse(cause error, detail string) *OracleError {
	return &OracleError{
		Kind:    KindParse,
		Message: detail,
		Cause:   cause,
	}
}

// Read creates an unreadable-document failure, rendered as "failed to read <path>: <cause>".
func Read(path string, cause error) *OracleError {
	return &OracleError{
		Kind:    KindRead,
		Tool:    path,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// IsLoadFailure reports whether err aborts a run before any case is verified.
func IsLoadFailure(err error) bool {
	var oe *OracleError
	if !stderrors.As(err, &oe) {
		return false
	}
	switch oe.Kind {
	case KindProcess, KindParse, KindRead:
		return true
	}
	return false
}

// IsMissingEvaluator reports whether err is a load failure caused by an
// evaluator binary or working directory that does not exist.
func IsMissingEvaluator(err error) bool {
	var oe *OracleError
	if !stderrors.As(err, &oe) || oe.Kind != KindProcess {
		return false
	}
	return stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist)
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var oe *OracleError
	if stderrors.As(err, &oe) {
		return oe.ExitCode()
	}
	return ExitRuntimeError
}
