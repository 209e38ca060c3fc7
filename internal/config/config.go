// Package config handles .claimrc.yml project-level configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/engine"
)

// ProjectConfig represents the .claimrc.yml configuration file.
type ProjectConfig struct {
	Version       int      `yaml:"version"`
	Modules       Modules  `yaml:"modules"`
	DisabledRules []string `yaml:"disabled_rules"`
	AutoRedactPII bool     `yaml:"auto_redact_pii"`
}

// Modules lets an operator turn individual validator modules on or off
// without touching code. A nil entry means "use the engine default
// (enabled)".
type Modules struct {
	Financial        *bool `yaml:"financial"`
	WaterRemediation *bool `yaml:"water_remediation"`
	Flooring         *bool `yaml:"flooring"`
	GeneralRepair    *bool `yaml:"general_repair"`
}

// LoadProjectConfig loads project configuration from .claimrc.yml or
// .claimrc.yaml. If explicitPath is provided (from --config flag), that
// file is loaded. Otherwise looks for .claimrc.yml then .claimrc.yaml in
// dir. Returns nil (no error) if no config file is found.
func LoadProjectConfig(dir string, explicitPath string) (*ProjectConfig, error) {
	var configPath string

	if explicitPath != "" {
		configPath = explicitPath
	} else {
		ymlPath := filepath.Join(dir, ".claimrc.yml")
		yamlPath := filepath.Join(dir, ".claimrc.yaml")

		if _, err := os.Stat(ymlPath); err == nil {
			configPath = ymlPath
		} else if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			return nil, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read project config %s", configPath)
	}

	cfg := &ProjectConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse project config %s", configPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid project config %s", configPath)
	}

	return cfg, nil
}

// Validate checks that the ProjectConfig values are valid.
func (c *ProjectConfig) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return errors.Errorf("unsupported config version %d (expected 1)", c.Version)
	}
	return nil
}

// ApplyToOptions applies project config overrides to an engine.Options
// and returns the modified value. Module toggles only apply when set in
// the config; disabled rules and auto_redact_pii always carry over.
func (c *ProjectConfig) ApplyToOptions(opts engine.Options) engine.Options {
	if c == nil {
		return opts
	}

	enabled := map[string]bool{
		"financial":         true,
		"water_remediation": true,
		"flooring":          true,
		"general_repair":    true,
	}
	if c.Modules.Financial != nil {
		enabled["financial"] = *c.Modules.Financial
	}
	if c.Modules.WaterRemediation != nil {
		enabled["water_remediation"] = *c.Modules.WaterRemediation
	}
	if c.Modules.Flooring != nil {
		enabled["flooring"] = *c.Modules.Flooring
	}
	if c.Modules.GeneralRepair != nil {
		enabled["general_repair"] = *c.Modules.GeneralRepair
	}

	var names []string
	for _, name := range engine.AllModules() {
		if enabled[name] {
			names = append(names, name)
		}
	}

	opts.EnabledModules = names
	opts.DisabledRules = append(opts.DisabledRules, c.DisabledRules...)
	if c.AutoRedactPII {
		opts.RedactPII = true
	}
	return opts
}
