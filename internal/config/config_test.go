package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enockola/Resolve-Video-Tracker/internal/audit"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 30, cfg.Top)
	assert.Nil(t, cfg.Rules())
	assert.Equal(t, int64(0), cfg.MinSizeBytes())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
top: 5
min_size: "1MiB"
exclude:
  - "**/.git/**"
categories:
  - name: backups
    patterns: ["Backups", "Vault"]
  - name: proxy
    patterns: ["ProxyMedia"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Top)
	assert.Equal(t, int64(1024*1024), cfg.MinSizeBytes())
	assert.Equal(t, []string{"**/.git/**"}, cfg.Exclude)

	// The configured table keeps its order: backups now outranks proxy.
	rules := cfg.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, audit.CategoryBackups, rules[0].Category)
	assert.Equal(t, []string{"Backups", "Vault"}, rules[0].Patterns)
	assert.Equal(t, audit.CategoryProxy, rules[1].Category)

	classifier := audit.NewClassifier(rules)
	assert.Equal(t, audit.CategoryBackups, classifier.Classify("ProxyMedia/Backups/x.mov"))
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	path := writeConfig(t, `
categories:
  - name: archives
    patterns: ["Archive"]
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown category")
}

func TestLoadRejectsOtherAsRuleTarget(t *testing.T) {
	path := writeConfig(t, `
categories:
  - name: other
    patterns: ["Misc"]
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown category")
}

func TestLoadRejectsEmptyPatterns(t *testing.T) {
	path := writeConfig(t, `
categories:
  - name: proxy
    patterns: []
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "no patterns")
}

func TestLoadRejectsNegativeTop(t *testing.T) {
	path := writeConfig(t, "top: -1\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "top must be >= 0")
}

func TestLoadRejectsBadMinSize(t *testing.T) {
	path := writeConfig(t, `min_size: "lots"`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid min_size")
}

func TestLoadRejectsBadExcludePattern(t *testing.T) {
	path := writeConfig(t, `
exclude:
  - "[broken"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid exclude pattern")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "top: [not a number\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config file")
}
