package config

import (
	"fmt"
	"time"

	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
	"github.com/AndreyAkinshin/regexoracle/internal/report"
	"github.com/AndreyAkinshin/regexoracle/internal/source"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a defaulted configuration for semantic errors the schema
// cannot express.
func Validate(cfg *Config) error {
	if err := validateSource(cfg.Source); err != nil {
		return err
	}
	if err := validateEngine(cfg.Engine); err != nil {
		return err
	}
	if err := validateVerify(cfg.Verify); err != nil {
		return err
	}
	return validateOutput(cfg.Output)
}

func validateSource(s *SourceConfig) error {
	switch s.Kind {
	case source.KindExec:
		if len(s.Command) == 0 || s.Command[0] == "" {
			return &ValidationError{Field: "source.command", Message: "is required for exec sources"}
		}
	case source.KindJsonnet:
	case source.KindFile:
		if s.Path == "" {
			return &ValidationError{Field: "source.path", Message: "is required for file sources"}
		}
	default:
		return &ValidationError{
			Field:   "source.kind",
			Message: fmt.Sprintf("must be %q, %q or %q", source.KindExec, source.KindJsonnet, source.KindFile),
		}
	}
	_, err := parseTimeout("source.timeout", s.Timeout)
	return err
}

func validateEngine(e *EngineConfig) error {
	if e.Name != oracle.EngineRegexp2 && e.Name != oracle.EngineRE2 {
		return &ValidationError{
			Field:   "engine.name",
			Message: fmt.Sprintf("must be %q or %q", oracle.EngineRegexp2, oracle.EngineRE2),
		}
	}
	if _, err := oracle.ParseModes(e.Flags); err != nil {
		return &ValidationError{Field: "engine.flags", Message: err.Error()}
	}
	if e.MatchTimeout != "" && e.Name != oracle.EngineRegexp2 {
		return &ValidationError{Field: "engine.match_timeout", Message: "is only supported by the regexp2 engine"}
	}
	_, err := parseTimeout("engine.match_timeout", e.MatchTimeout)
	return err
}

func validateVerify(v *VerifyConfig) error {
	if _, err := oracle.ParsePolicy(v.MissingExpectation); err != nil {
		return &ValidationError{Field: "verify.missing_expectation", Message: err.Error()}
	}
	return nil
}

func validateOutput(o *OutputConfig) error {
	if o.Format != report.FormatJSON && o.Format != report.FormatJCS {
		return &ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("must be %q or %q", report.FormatJSON, report.FormatJCS),
		}
	}
	return nil
}

func parseTimeout(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("invalid duration %q", value)}
	}
	if d <= 0 {
		return 0, &ValidationError{Field: field, Message: "must be positive"}
	}
	return d, nil
}

// SourceTimeout returns the load timeout, zero when unbounded.
func (c *Config) SourceTimeout() time.Duration {
	d, _ := parseTimeout("source.timeout", c.Source.Timeout)
	return d
}

// MatchTimeout returns the per-match timeout, zero when unbounded.
func (c *Config) MatchTimeout() time.Duration {
	d, _ := parseTimeout("engine.match_timeout", c.Engine.MatchTimeout)
	return d
}

// Modes returns the engine mode flags.
func (c *Config) Modes() oracle.Modes {
	m, _ := oracle.ParseModes(c.Engine.Flags)
	return m
}

// Policy returns the missing-expectation policy.
func (c *Config) Policy() oracle.ExpectationPolicy {
	p, _ := oracle.ParsePolicy(c.Verify.MissingExpectation)
	return p
}
