package config

import (
	"path/filepath"

	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
	"github.com/AndreyAkinshin/regexoracle/internal/source"
)

// Overrides carries command-line settings that take precedence over the file.
type Overrides struct {
	Source string
	Input  string
	Engine string
	Format string
}

// Apply merges o into c, fills defaults for the resulting source kind and
// validates the outcome.
func (c *Config) Apply(o Overrides) error {
	if o.Source != "" && o.Source != c.Source.Kind {
		c.Source.Kind = o.Source
	}
	if o.Engine != "" {
		c.Engine.Name = o.Engine
	}
	if o.Format != "" {
		c.Output.Format = o.Format
	}
	applyDefaults(c)

	if o.Input != "" {
		// Command-line paths are relative to the working directory, which
		// may differ from the exec source's directory.
		if abs, err := filepath.Abs(o.Input); err == nil {
			o.Input = abs
		}
		switch c.Source.Kind {
		case source.KindExec:
			c.Source.Command = withInput(c.Source.Command, o.Input)
		default:
			c.Source.Path = o.Input
		}
	}
	return Validate(c)
}

// withInput replaces the evaluator's trailing input argument.
func withInput(command []string, input string) []string {
	out := append([]string(nil), command...)
	if len(out) < 2 {
		return append(out, input)
	}
	out[len(out)-1] = input
	return out
}

// Loader builds the configured test document source.
func (c *Config) Loader() oracle.Loader {
	var l oracle.Loader
	switch c.Source.Kind {
	case source.KindJsonnet:
		l = &source.Jsonnet{Path: c.Source.Path, JPath: c.Source.JPath}
	case source.KindFile:
		l = &source.File{Path: c.Source.Path}
	default:
		l = source.NewExec(c.Source.Command, c.Source.Dir)
	}
	return source.WithTimeout(l, c.SourceTimeout())
}

// NewEngine builds the configured reference engine.
func (c *Config) NewEngine() (oracle.Engine, error) {
	return oracle.NewEngine(c.Engine.Name, c.Modes(), c.MatchTimeout())
}

// NewVerifier builds a verifier around the configured engine.
func (c *Config) NewVerifier() (*oracle.Verifier, error) {
	engine, err := c.NewEngine()
	if err != nil {
		return nil, err
	}
	return oracle.NewVerifier(engine, oracle.Options{
		Policy: c.Policy(),
		Label:  c.Verify.Label,
	}), nil
}
