package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "codegraph.yml", `languages:
  - typescript
  - go
excludeDirs:
  - node_modules
  - vendor
thresholds:
  complexity: 15
  maxParams: 6
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"typescript", "go"}, cfg.Languages)
	assert.Equal(t, []string{"node_modules", "vendor"}, cfg.ExcludeDirs)
	assert.Equal(t, 15, cfg.Thresholds.Complexity)
	assert.Equal(t, 6, cfg.Thresholds.MaxParams)
	assert.Zero(t, cfg.Thresholds.MaxFunctionLines, "unset fields stay zero")
}

func TestLoad_YamlExtension(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "codegraph.yaml", "thresholds:\n  complexity: 20\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Thresholds.Complexity)
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err, "a missing config file is not an error")
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "codegraph.yml", "thresholds: [not a map\n")

	_, err := Load(dir)
	require.Error(t, err)
}

func TestRuleThresholds(t *testing.T) {
	t.Run("defaults when empty", func(t *testing.T) {
		cfg := &ProjectConfig{}
		th := cfg.RuleThresholds()
		assert.Equal(t, 10, th.Complexity)
		assert.Equal(t, 5, th.MaxParams)
		assert.Equal(t, 60, th.MaxFunctionLines)
		assert.Equal(t, 300, th.MaxClassLines)
	})

	t.Run("overrides merge over defaults", func(t *testing.T) {
		cfg := &ProjectConfig{Thresholds: Thresholds{Complexity: 25, MaxClassLines: 500}}
		th := cfg.RuleThresholds()
		assert.Equal(t, 25, th.Complexity)
		assert.Equal(t, 500, th.MaxClassLines)
		assert.Equal(t, 5, th.MaxParams, "unset fields keep their defaults")
		assert.Equal(t, 60, th.MaxFunctionLines)
	})
}
