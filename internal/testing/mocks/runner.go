package mocks

import (
	"context"
	"sync"
)

// Call is one recorded Runner invocation.
type Call struct {
	Dir  string
	Argv []string
}

// Runner implements source.CommandRunner with canned output.
type Runner struct {
	Stdout string
	Stderr string
	Err    error

	mu    sync.Mutex
	calls []Call
}

// Output records the invocation and returns the canned output.
func (r *Runner) Output(_ context.Context, dir string, argv []string) ([]byte, []byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Dir: dir, Argv: append([]string(nil), argv...)})
	r.mu.Unlock()
	return []byte(r.Stdout), []byte(r.Stderr), r.Err
}

// Calls returns the recorded invocations.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Call, len(r.calls))
	copy(result, r.calls)
	return result
}
