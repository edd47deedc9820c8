// Package regexoracle provides public constants and helpers for tools and
// tests that drive the regexoracle verifier from Go.
package regexoracle

// Exit codes returned by the regexoracle CLI.
const (
	// ExitSuccess indicates a summary was written (and, under --strict, that every case passed).
	ExitSuccess = 0

	// ExitFailure indicates failed cases under --strict or failed report rows.
	ExitFailure = 1

	// ExitConfigError indicates a configuration, usage or unreadable input error.
	ExitConfigError = 2

	// ExitEnvError indicates that verify --strict could not find the evaluator.
	ExitEnvError = 3
)
