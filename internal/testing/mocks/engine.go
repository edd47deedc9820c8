// Package mocks provides shared test doubles for regexoracle packages.
package mocks

import (
	"errors"
	"sync"

	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

// Engine implements oracle.Engine with scripted outcomes.
// Use NewEngine() to create instances with a fluent builder API.
// Patterns that are not scripted compile, and match nothing.
type Engine struct {
	name     string
	rejects  map[string]string
	matches  map[[2]string]bool
	failures map[[2]string]string

	mu       sync.Mutex
	compiled []string
}

// NewEngine creates a new mock engine with the given name.
func NewEngine(name string) *Engine {
	return &Engine{
		name:     name,
		rejects:  make(map[string]string),
		matches:  make(map[[2]string]bool),
		failures: make(map[[2]string]string),
	}
}

// WithReject makes Compile(pattern) fail with msg.
func (e *Engine) WithReject(pattern, msg string) *Engine {
	e.rejects[pattern] = msg
	return e
}

// WithMatch scripts the result of matching pattern against subject.
func (e *Engine) WithMatch(pattern, subject string, found bool) *Engine {
	e.matches[[2]string{pattern, subject}] = found
	return e
}

// WithMatchError makes matching pattern against subject fail with msg.
func (e *Engine) WithMatchError(pattern, subject, msg string) *Engine {
	e.failures[[2]string{pattern, subject}] = msg
	return e
}

// Name implements oracle.Engine.
func (e *Engine) Name() string { return e.name }

// Compile implements oracle.Engine.
func (e *Engine) Compile(pattern string) (oracle.Matcher, error) {
	e.mu.Lock()
	e.compiled = append(e.compiled, pattern)
	e.mu.Unlock()

	if msg, ok := e.rejects[pattern]; ok {
		return nil, errors.New(msg)
	}
	return matcher{engine: e, pattern: pattern}, nil
}

// Compiled returns the patterns passed to Compile, in call order.
func (e *Engine) Compiled() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := make([]string, len(e.compiled))
	copy(result, e.compiled)
	return result
}

type matcher struct {
	engine  *Engine
	pattern string
}

func (m matcher) MatchString(subject string) (bool, error) {
	key := [2]string{m.pattern, subject}
	if msg, ok := m.engine.failures[key]; ok {
		return false, errors.New(msg)
	}
	return m.engine.matches[key], nil
}
