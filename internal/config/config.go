/*
PURPOSE:
  Defines the configuration structure and loading logic for asmgraph.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the input tree, the run condition, the charts
    to draw and where exports go.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs to support Environment variables overrides (ASMGRAPH_...).
  - A bad condition or chart name must stop the tool before any scanning.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli
  - Dependencies: gopkg.in/yaml.v3, github.com/kelseyhightower/envconfig

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config file is not an error (falls back to defaults).

IMPLEMENTATION RULES:
  - Config struct tags should support yaml and envconfig.
  - Precedence: defaults < file < environment < flags (flags applied in cli).

USAGE:
  cfg, err := config.Load("asmgraph.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new options.
*/

package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/asmgraph/internal/chart"
	"github.com/daryltucker/asmgraph/internal/condition"
)

// EnvPrefix prefixes every environment override, e.g. ASMGRAPH_INPUT_DIR.
const EnvPrefix = "ASMGRAPH"

// Config represents the full configuration for asmgraph.
type Config struct {
	// InputDir is the root of the report tree.
	InputDir string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	// Condition selects runs, e.g. "SM=n,WL=h:24_rr:5".
	Condition string `yaml:"condition" envconfig:"CONDITION"`
	// Charts lists chart kinds to draw; empty means all.
	Charts    []string `yaml:"charts" envconfig:"CHARTS"`
	OutputDir string   `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogFormat string   `yaml:"log_format" envconfig:"LOG_FORMAT"`
	Verbose   bool     `yaml:"verbose" envconfig:"VERBOSE"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		InputDir:  ".",
		OutputDir: ".",
		LogFormat: "text",
	}
}

// Load reads configuration from a file, then applies environment overrides.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, the defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range []string{"asmgraph.yaml", "asmgraph.yml"} {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}

// ConditionSet parses the configured condition expression.
func (c *Config) ConditionSet() (condition.Set, error) {
	set, err := condition.Parse(c.Condition)
	if err != nil {
		return nil, fmt.Errorf("invalid condition %q: %w", c.Condition, err)
	}
	return set, nil
}

// ChartKinds resolves the configured chart names.
func (c *Config) ChartKinds() ([]chart.Kind, error) {
	kinds, err := chart.ParseKinds(c.Charts)
	if err != nil {
		return nil, fmt.Errorf("invalid chart list: %w", err)
	}
	return kinds, nil
}
