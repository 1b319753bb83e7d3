package config

import (
	"os"
	"path/filepath"

	"github.com/dusk-indust/codegraph/internal/analyzer"
	"gopkg.in/yaml.v3"
)

// Thresholds overrides the baseline issue-rule limits. Zero fields fall back
// to the defaults.
type Thresholds struct {
	Complexity       int `yaml:"complexity,omitempty"`
	MaxParams        int `yaml:"maxParams,omitempty"`
	MaxFunctionLines int `yaml:"maxFunctionLines,omitempty"`
	MaxClassLines    int `yaml:"maxClassLines,omitempty"`
}

// ProjectConfig holds project-level settings loaded from codegraph.yml.
type ProjectConfig struct {
	Languages   []string   `yaml:"languages,omitempty"`
	ExcludeDirs []string   `yaml:"excludeDirs,omitempty"`
	Thresholds  Thresholds `yaml:"thresholds,omitempty"`
}

// Load attempts to read codegraph.yml or codegraph.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"codegraph.yml", "codegraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// RuleThresholds merges the config overrides over the engine defaults.
func (c *ProjectConfig) RuleThresholds() analyzer.Thresholds {
	t := analyzer.DefaultThresholds()
	if c.Thresholds.Complexity > 0 {
		t.Complexity = c.Thresholds.Complexity
	}
	if c.Thresholds.MaxParams > 0 {
		t.MaxParams = c.Thresholds.MaxParams
	}
	if c.Thresholds.MaxFunctionLines > 0 {
		t.MaxFunctionLines = c.Thresholds.MaxFunctionLines
	}
	if c.Thresholds.MaxClassLines > 0 {
		t.MaxClassLines = c.Thresholds.MaxClassLines
	}
	return t
}
