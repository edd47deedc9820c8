package mocks

import (
	"context"
	"sync/atomic"

	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

// Loader implements oracle.Loader returning a fixed document or error.
type Loader struct {
	doc   oracle.Document
	err   error
	calls int32
}

// NewLoader creates a loader that returns doc.
func NewLoader(doc oracle.Document) *Loader {
	return &Loader{doc: doc}
}

// NewFailingLoader creates a loader that returns err.
func NewFailingLoader(err error) *Loader {
	return &Loader{err: err}
}

// Load implements oracle.Loader.
func (l *Loader) Load(ctx context.Context) (oracle.Document, error) {
	atomic.AddInt32(&l.calls, 1)
	if err := ctx.Err(); err != nil {
		return oracle.Document{}, err
	}
	if l.err != nil {
		return oracle.Document{}, l.err
	}
	return l.doc, nil
}

// Calls returns the number of Load calls.
func (l *Loader) Calls() int {
	return int(atomic.LoadInt32(&l.calls))
}
