// Package config loads pathreach's configuration: built-in defaults,
// overridden by an optional YAML file, overridden in turn by CLI flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the request-level options in the external interface,
// plus the logging/output knobs that only make sense at the CLI layer.
type Config struct {
	AnalysisTimeoutMs   int    `yaml:"analysisTimeoutMs"`
	PathSolverTimeoutMs int    `yaml:"pathSolverTimeoutMs"`
	Warnings            bool   `yaml:"warnings"`
	Logging             bool   `yaml:"logging"`
	Format              string `yaml:"format"`
	DisableMetrics      bool   `yaml:"disableMetrics"`
}

// Default returns the documented built-in defaults.
func Default() *Config {
	return &Config{
		AnalysisTimeoutMs:   10000,
		PathSolverTimeoutMs: 2000,
		Warnings:            false,
		Logging:             false,
		Format:              "text",
		DisableMetrics:      false,
	}
}

// Load reads path as YAML over top of Default(), returning Default()
// unchanged if path does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
