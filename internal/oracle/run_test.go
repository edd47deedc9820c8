package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func staticLoader(doc Document) Loader {
	return LoaderFunc(func(context.Context) (Document, error) {
		return doc, nil
	})
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Name: "a", Pass: true},
		{Name: "b", Pass: false},
		{Name: "c", Pass: true},
	}
	s := Aggregate(records)
	if s.Total != 3 || s.Passed != 2 || s.Failed != 1 {
		t.Errorf("Aggregate() totals = %d/%d/%d, want 3/2/1", s.Total, s.Passed, s.Failed)
	}
	if s.Total != s.Passed+s.Failed || s.Total != len(s.Cases) {
		t.Error("total must equal passed+failed and len(cases)")
	}
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	s := Aggregate(nil)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"cases":[],"total":0,"passed":0,"failed":0}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestRun_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  Document
		want []Record
	}{
		{
			name: "uncompilable pattern expected uncompilable",
			doc:  Document{Validate: []ValidateCase{{Name: "a", Pattern: "(", PyExpect: boolPtr(false)}}},
		},
		{
			name: "match found",
			doc:  Document{Match: []MatchCase{{Name: "b", Pattern: "ab+c", Subject: "xabbbcZ", Expect: true}}},
			want: []Record{{Name: "b (python)", Pass: true, Got: Observed(true), Want: true}},
		},
	}

	v := newTestVerifier(PolicyTriviallyPass)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, _ := Run(context.Background(), staticLoader(tt.doc), v)
			if s.Total != 1 || s.Passed != 1 || s.Failed != 0 {
				t.Fatalf("totals = %d/%d/%d, want 1/1/0", s.Total, s.Passed, s.Failed)
			}
			if tt.want != nil {
				if diff := cmp.Diff(tt.want, s.Cases); diff != "" {
					t.Errorf("Run() cases mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestRun_InvalidMatchPattern(t *testing.T) {
	t.Parallel()

	doc := Document{Match: []MatchCase{{Name: "c", Pattern: "(", Subject: "x", Expect: true}}}
	s, _ := Run(context.Background(), staticLoader(doc), newTestVerifier(PolicyTriviallyPass))

	if s.Failed != 1 {
		t.Fatalf("Failed = %d, want 1", s.Failed)
	}
	data, err := json.Marshal(s.Cases[0])
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.HasPrefix(string(data), `{"name":"c (python)","pass":false,"got":{"err":"`) {
		t.Errorf("unexpected record encoding: %s", data)
	}
	if !strings.HasSuffix(string(data), `"},"want":true}`) {
		t.Errorf("unexpected record encoding: %s", data)
	}
}

func TestRun_LoadFailure(t *testing.T) {
	t.Parallel()

	loader := LoaderFunc(func(context.Context) (Document, error) {
		return Document{}, errors.New("failed to run jsonnet: not found")
	})
	s, loadErr := Run(context.Background(), loader, newTestVerifier(PolicyTriviallyPass))
	if loadErr == nil || loadErr.Error() != "failed to run jsonnet: not found" {
		t.Errorf("Run() error = %v, want the load error", loadErr)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"cases":[{"name":"load blocks (python)","pass":false,"got":{"err":"failed to run jsonnet: not found"},"want":true}],"total":1,"passed":0,"failed":1}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestRun_MissingExpectationAlwaysPasses(t *testing.T) {
	t.Parallel()

	doc := Document{Validate: []ValidateCase{
		{Name: "valid", Pattern: "abc"},
		{Name: "invalid", Pattern: "(?<"},
		{Name: "unbalanced", Pattern: "a)"},
	}}
	s, _ := Run(context.Background(), staticLoader(doc), newTestVerifier(PolicyTriviallyPass))
	if s.Failed != 0 || s.Passed != 3 {
		t.Errorf("totals = %d/%d/%d, want 3/3/0", s.Total, s.Passed, s.Failed)
	}
}

func TestRun_CaseCountMatchesDocument(t *testing.T) {
	t.Parallel()

	doc := Document{
		Validate: []ValidateCase{{Name: "v1", Pattern: "a"}, {Name: "v2", Pattern: "(", PyExpect: boolPtr(true)}},
		Match: []MatchCase{
			{Name: "m1", Pattern: "a", Subject: "b", Expect: true},
			{Name: "m2", Pattern: "[", Subject: "b", Expect: false},
			{Name: "m3", Pattern: "^b$", Subject: "b", Expect: true},
		},
	}
	s, _ := Run(context.Background(), staticLoader(doc), newTestVerifier(PolicyTriviallyPass))
	if len(s.Cases) != doc.Len() {
		t.Errorf("len(cases) = %d, want %d", len(s.Cases), doc.Len())
	}
	if s.Total != s.Passed+s.Failed {
		t.Errorf("total %d != passed %d + failed %d", s.Total, s.Passed, s.Failed)
	}
	if s.Failed != 3 {
		t.Errorf("Failed = %d, want 3", s.Failed)
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	doc := Document{
		Validate: []ValidateCase{{Name: "v", Pattern: "(", PyExpect: boolPtr(false)}},
		Match:    []MatchCase{{Name: "m", Pattern: "x+", Subject: "axxb", Expect: true}},
	}
	v := newTestVerifier(PolicyTriviallyPass)

	firstSummary, _ := Run(context.Background(), staticLoader(doc), v)
	first, err := json.Marshal(firstSummary)
	if err != nil {
		t.Fatal(err)
	}
	secondSummary, _ := Run(context.Background(), staticLoader(doc), v)
	second, err := json.Marshal(secondSummary)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("runs differ:\n%s\n%s", first, second)
	}
}

func TestLoadFailure_Label(t *testing.T) {
	t.Parallel()

	s := LoadFailure(errors.New("boom"), "")
	if s.Cases[0].Name != "load blocks (python)" {
		t.Errorf("Name = %q", s.Cases[0].Name)
	}
	s = LoadFailure(errors.New("boom"), "re2")
	if s.Cases[0].Name != "load blocks (re2)" {
		t.Errorf("Name = %q", s.Cases[0].Name)
	}
}
