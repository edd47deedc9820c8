package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/regexoracle/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFiles_Merge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"cases":[{"name":"plus","pass":true,"got":true,"want":true}],"total":1,"passed":1,"failed":0}`)
	b := writeFile(t, dir, "b.json", `{"cases":[{"name":"plus (python)","pass":false,"got":{"err":"bad"},"want":true}]}`)
	c := writeFile(t, dir, "c.json", `{}`)

	cases, err := ReadFiles([]string{a, b, c})
	if err != nil {
		t.Fatalf("ReadFiles() error = %v", err)
	}
	if diff := cmp.Diff([]string{"plus", "plus (python)"}, names(cases)); diff != "" {
		t.Errorf("ReadFiles() names mismatch (-want +got):\n%s", diff)
	}
	if got := Details(cases[1]); got != "bad" {
		t.Errorf("Details() = %q, want %q", got, "bad")
	}
}

func TestReadFiles_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.json")},
		{"invalid json", writeFile(t, dir, "bad.json", `{"cases":`)},
		{"wrong shape", writeFile(t, dir, "shape.json", `{"cases":[{"name":"x"}]}`)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadFiles([]string{tt.path})
			if err == nil {
				t.Fatal("ReadFiles() error = nil, want error")
			}
			if !strings.Contains(err.Error(), "failed to read or parse results file: "+tt.path) {
				t.Errorf("ReadFiles() error = %v, want file named", err)
			}
			if code := errors.GetExitCode(err); code != errors.ExitConfigError {
				t.Errorf("GetExitCode() = %d, want %d", code, errors.ExitConfigError)
			}
		})
	}
}
