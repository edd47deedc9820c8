package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/regexoracle/internal/errors"
	"github.com/AndreyAkinshin/regexoracle/internal/schema"
)

// DefaultResultsFile is read when no result files are named.
var DefaultResultsFile = filepath.Join("tests", "results.json")

// Case is one row of a results file. Got and Want are kept raw because
// files written by the system under test may carry any JSON value there.
type Case struct {
	Name string          `json:"name"`
	Pass bool            `json:"pass"`
	Got  json.RawMessage `json:"got,omitempty"`
	Want json.RawMessage `json:"want,omitempty"`
}

type resultsFile struct {
	Cases []Case `json:"cases"`
}

// ReadFiles reads and merges the cases of every results file in order.
// A file without a cases array contributes nothing.
func ReadFiles(paths []string) ([]Case, error) {
	if len(paths) == 0 {
		paths = []string{DefaultResultsFile}
	}

	var cases []Case
	for _, path := range paths {
		fileCases, err := readFile(path)
		if err != nil {
			return nil, err
		}
		cases = append(cases, fileCases...)
	}
	return cases, nil
}

func readFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	if err := schema.ValidateResults(data); err != nil {
		return nil, fileError(path, err)
	}
	var f resultsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fileError(path, err)
	}
	return f.Cases, nil
}

func fileError(path string, err error) *errors.OracleError {
	return &errors.OracleError{
		Kind:    errors.KindConfig,
		Message: fmt.Sprintf("failed to read or parse results file: %s: %v", path, err),
		Cause:   err,
	}
}
