package config

import (
	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
	"github.com/AndreyAkinshin/regexoracle/internal/report"
	"github.com/AndreyAkinshin/regexoracle/internal/source"
)

// Default configuration values.
const (
	DefaultSourceKind   = source.KindExec
	DefaultEngine       = oracle.EngineRegexp2
	DefaultFormat       = report.FormatJSON
	DefaultExpectPolicy = string(oracle.PolicyTriviallyPass)
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applySourceDefaults(cfg)
	applyEngineDefaults(cfg)
	applyVerifyDefaults(cfg)
	applyOutputDefaults(cfg)
}

func applySourceDefaults(cfg *Config) {
	if cfg.Source == nil {
		cfg.Source = &SourceConfig{}
	}
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = DefaultSourceKind
	}
	switch cfg.Source.Kind {
	case source.KindExec:
		if len(cfg.Source.Command) == 0 {
			cfg.Source.Command = source.DefaultCommand()
		}
	case source.KindJsonnet:
		if cfg.Source.Path == "" {
			cfg.Source.Path = source.DefaultInput
		}
	}
}

func applyEngineDefaults(cfg *Config) {
	if cfg.Engine == nil {
		cfg.Engine = &EngineConfig{}
	}
	if cfg.Engine.Name == "" {
		cfg.Engine.Name = DefaultEngine
	}
	// An explicit empty list disables every flag.
	if cfg.Engine.Flags == nil {
		cfg.Engine.Flags = []string{oracle.FlagDotAll}
	}
}

func applyVerifyDefaults(cfg *Config) {
	if cfg.Verify == nil {
		cfg.Verify = &VerifyConfig{}
	}
	if cfg.Verify.MissingExpectation == "" {
		cfg.Verify.MissingExpectation = DefaultExpectPolicy
	}
	if cfg.Verify.Label == "" {
		cfg.Verify.Label = oracle.DefaultLabel
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output == nil {
		cfg.Output = &OutputConfig{}
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultFormat
	}
}
