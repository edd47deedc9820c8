package regexoracle

import (
	"context"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
	"github.com/AndreyAkinshin/regexoracle/internal/source"
)

// Re-exported result types.
type (
	Summary = oracle.Summary
	Record  = oracle.Record
	Got     = oracle.Got
)

// Verify evaluates the jsonnet test document at path in-process and checks
// every case with the default reference engine. Load failures are reported
// inside the summary, as the CLI does.
func Verify(ctx context.Context, path string) (Summary, error) {
	engine, err := oracle.NewEngine(oracle.EngineRegexp2, oracle.DefaultModes(), 0)
	if err != nil {
		return Summary{}, err
	}
	v := oracle.NewVerifier(engine, oracle.Options{})
	summary, _ := oracle.Run(ctx, &source.Jsonnet{Path: path}, v)
	return summary, nil
}

// FindDocument walks up from the working directory to the first directory
// containing test/regex_test.jsonnet and returns the file's path.
func FindDocument() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindDocumentFrom(cwd)
}

// FindDocumentFrom is FindDocument starting at startDir.
func FindDocumentFrom(startDir string) (string, error) {
	dir := startDir
	for {
		path := filepath.Join(dir, filepath.FromSlash(source.DefaultInput))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", &DocumentNotFoundError{StartDir: startDir}
}

// DocumentNotFoundError indicates no test document was found.
type DocumentNotFoundError struct {
	StartDir string
}

func (e *DocumentNotFoundError) Error() string {
	return source.DefaultInput + " not found (searched from " + e.StartDir + ")"
}
