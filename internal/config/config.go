// Package config provides loading and validation of regexoracle.yaml.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/regexoracle/internal/schema"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "regexoracle.yaml"

// Config represents the complete regexoracle.yaml configuration.
type Config struct {
	Source *SourceConfig `yaml:"source,omitempty" json:"source,omitempty"`
	Engine *EngineConfig `yaml:"engine,omitempty" json:"engine,omitempty"`
	Verify *VerifyConfig `yaml:"verify,omitempty" json:"verify,omitempty"`
	Output *OutputConfig `yaml:"output,omitempty" json:"output,omitempty"`
}

// SourceConfig selects where the test document comes from.
type SourceConfig struct {
	Kind    string   `yaml:"kind,omitempty" json:"kind,omitempty"`       // "exec", "jsonnet" or "file"
	Command []string `yaml:"command,omitempty" json:"command,omitempty"` // exec: evaluator argv
	Path    string   `yaml:"path,omitempty" json:"path,omitempty"`       // jsonnet/file: input path
	JPath   []string `yaml:"jpath,omitempty" json:"jpath,omitempty"`     // jsonnet: library directories
	Dir     string   `yaml:"dir,omitempty" json:"dir,omitempty"`         // exec: working directory
	Timeout string   `yaml:"timeout,omitempty" json:"timeout,omitempty"` // Go duration; empty means none
}

// EngineConfig selects the reference engine.
type EngineConfig struct {
	Name         string   `yaml:"name,omitempty" json:"name,omitempty"`                   // "regexp2" or "re2"
	Flags        []string `yaml:"flags" json:"flags"`                                     // nil means [dotall]
	MatchTimeout string   `yaml:"match_timeout,omitempty" json:"match_timeout,omitempty"` // regexp2 only
}

// VerifyConfig controls verdicts and record naming.
type VerifyConfig struct {
	MissingExpectation string `yaml:"missing_expectation,omitempty" json:"missing_expectation,omitempty"`
	Label              string `yaml:"label,omitempty" json:"label,omitempty"`
}

// OutputConfig controls the summary encoding.
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // "json" or "jcs"
}

// Load reads and parses a configuration file. Relative source paths are
// resolved against the file's directory, which is also the default working
// directory of an exec source.
func Load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, warnings, err := Parse(data)
	if err != nil {
		return nil, warnings, err
	}
	resolvePaths(cfg, filepath.Dir(path))
	return cfg, warnings, nil
}

func resolvePaths(cfg *Config, base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	cfg.Source.Path = resolve(cfg.Source.Path)
	for i, p := range cfg.Source.JPath {
		cfg.Source.JPath[i] = resolve(p)
	}
	if cfg.Source.Dir == "" {
		cfg.Source.Dir = base
	} else {
		cfg.Source.Dir = resolve(cfg.Source.Dir)
	}
}

// Parse decodes YAML configuration data, checks it against the config
// schema, applies defaults and validates the result. Unknown fields are
// reported as warnings.
func Parse(data []byte) (*Config, []string, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := schema.ValidateConfig(asJSON); err != nil {
		return nil, nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	warnings := detectUnknownFields(asJSON)

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, warnings, err
	}
	return &cfg, warnings, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
