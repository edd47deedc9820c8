// Package oracle re-verifies regex test cases against a reference engine.
//
// A run is a pure pipeline: a Loader produces a Document, a Verifier turns
// each case into a Record, and Aggregate packages the records into a Summary.
// Nothing is shared between runs.
package oracle

import (
	"context"
	"fmt"
)

// DefaultLabel tags every record name, e.g. "unclosed group (python)".
// Result printers pair tagged rows with the untagged rows of the system under test.
const DefaultLabel = "python"

// Document is the set of test blocks produced by the configuration evaluator.
type Document struct {
	Validate []ValidateCase `json:"validate"`
	Match    []MatchCase    `json:"match"`
}

// Len returns the number of cases in the document.
func (d Document) Len() int {
	return len(d.Validate) + len(d.Match)
}

// ValidateCase checks whether a pattern compiles.
type ValidateCase struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	// PyExpect is the expected compilability under the reference engine.
	// Nil when the document carries no expectation.
	PyExpect *bool `json:"py_expect,omitempty"`
}

// MatchCase checks whether a pattern matches somewhere in a subject.
type MatchCase struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Subject string `json:"subject"`
	Expect  bool   `json:"expect"`
}

// Record is the verdict for one case.
type Record struct {
	Name string `json:"name"`
	Pass bool   `json:"pass"`
	Got  Got    `json:"got"`
	Want bool   `json:"want"`
}

// Summary is the complete output of a run.
type Summary struct {
	Cases  []Record `json:"cases"`
	Total  int      `json:"total"`
	Passed int      `json:"passed"`
	Failed int      `json:"failed"`
}

// Loader produces the document for a run.
type Loader interface {
	Load(ctx context.Context) (Document, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (Document, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (Document, error) {
	return f(ctx)
}

func caseName(name, label string) string {
	return fmt.Sprintf("%s (%s)", name, label)
}
