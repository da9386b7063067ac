// Package config loads the YAML run configuration for a batch impact
// run. Flags may override individual fields after loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig describes one batch run: where the inputs live, which
// columns play which causal role, and the estimation knobs.
type RunConfig struct {
	// Inputs.
	PanelPath    string `yaml:"panel"`
	PeriodColumn string `yaml:"period_column"`
	PolicyPath   string `yaml:"policies"`
	PolicyName   string `yaml:"policy_name_column"`
	PolicyYear   string `yaml:"policy_year_column"`

	// Causal roles.
	Confounders     []string `yaml:"confounders"`
	Outcomes        []string `yaml:"outcomes,omitempty"`
	OutcomePrefixes []string `yaml:"outcome_prefixes,omitempty"`

	// Estimation knobs.
	Trials  int    `yaml:"trials,omitempty"`
	Workers int    `yaml:"workers,omitempty"`
	Seed    uint64 `yaml:"seed,omitempty"`

	// Outputs.
	OutputPath string `yaml:"output"`
	StorePath  string `yaml:"store,omitempty"`
}

// Load reads and validates a RunConfig from a YAML file.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *RunConfig) applyDefaults() {
	if c.PeriodColumn == "" {
		c.PeriodColumn = "Year"
	}
	if c.PolicyName == "" {
		c.PolicyName = "Policy"
	}
	if c.PolicyYear == "" {
		c.PolicyYear = "Year"
	}
}

// Validate checks the fields the loaders cannot default.
func (c *RunConfig) Validate() error {
	if c.PanelPath == "" {
		return fmt.Errorf("panel path is required")
	}
	if c.PolicyPath == "" {
		return fmt.Errorf("policies path is required")
	}
	if len(c.Confounders) == 0 {
		return fmt.Errorf("at least one confounder must be declared")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if c.Trials < 0 {
		return fmt.Errorf("trials must be non-negative")
	}
	return nil
}
