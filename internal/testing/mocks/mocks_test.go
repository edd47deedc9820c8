package mocks

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

var (
	_ oracle.Engine = (*Engine)(nil)
	_ oracle.Loader = (*Loader)(nil)
)

func TestEngine(t *testing.T) {
	t.Parallel()
	e := NewEngine("stub").
		WithReject("(", "missing )").
		WithMatch("a", "cat", true).
		WithMatchError("b", "x", "timeout")

	if _, err := e.Compile("("); err == nil || err.Error() != "missing )" {
		t.Errorf("Compile(\"(\") error = %v, want missing )", err)
	}

	m, err := e.Compile("a")
	if err != nil {
		t.Fatalf("Compile(\"a\") error = %v", err)
	}
	if found, _ := m.MatchString("cat"); !found {
		t.Error("MatchString(\"cat\") = false, want true")
	}
	if found, _ := m.MatchString("dog"); found {
		t.Error("MatchString(\"dog\") = true, want false for unscripted subject")
	}

	m, _ = e.Compile("b")
	if _, err := m.MatchString("x"); err == nil {
		t.Error("MatchString(\"x\") error = nil, want scripted error")
	}

	if diff := cmp.Diff([]string{"(", "a", "b"}, e.Compiled()); diff != "" {
		t.Errorf("Compiled() mismatch (-want +got):\n%s", diff)
	}
	if e.Name() != "stub" {
		t.Errorf("Name() = %q, want stub", e.Name())
	}
}

func TestLoader(t *testing.T) {
	t.Parallel()
	doc := oracle.Document{Match: []oracle.MatchCase{{Name: "m"}}}
	l := NewLoader(doc)

	got, err := l.Load(context.Background())
	if err != nil || got.Len() != 1 {
		t.Errorf("Load() = %+v, %v, want one case", got, err)
	}

	boom := stderrors.New("boom")
	f := NewFailingLoader(boom)
	if _, err := f.Load(context.Background()); !stderrors.Is(err, boom) {
		t.Errorf("Load() error = %v, want boom", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Load(cancelled) error = %v, want context.Canceled", err)
	}
	if l.Calls() != 2 {
		t.Errorf("Calls() = %d, want 2", l.Calls())
	}
}

func TestRunner(t *testing.T) {
	t.Parallel()
	r := &Runner{Stdout: "out", Stderr: "err"}

	argv := []string{"jsonnet", "x.jsonnet"}
	stdout, stderr, err := r.Output(context.Background(), "/work", argv)
	argv[0] = "mutated"

	if string(stdout) != "out" || string(stderr) != "err" || err != nil {
		t.Errorf("Output() = %q, %q, %v", stdout, stderr, err)
	}
	want := []Call{{Dir: "/work", Argv: []string{"jsonnet", "x.jsonnet"}}}
	if diff := cmp.Diff(want, r.Calls()); diff != "" {
		t.Errorf("Calls() mismatch (-want +got):\n%s", diff)
	}
}
