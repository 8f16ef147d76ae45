package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/config"
)

func newTarget() *config.Config {
	cfg := config.Defaults()
	cfg.Parser.FactorsFile = "/srv/factors.yaml"
	return cfg
}

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	writeFile(t, path, content)
	return path
}

func TestShallowMergeYAML_ReplacesPresentSections(t *testing.T) {
	target := newTarget()
	overlay := writeOverlay(t, `
output:
  default_format: ndjson
logging:
  level: warn
  format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, config.FormatNDJSON, target.Output.DefaultFormat)
	assert.Zero(t, target.Output.Precision, "section is replaced, not merged")
	assert.Equal(t, "warn", target.Logging.Level)
	assert.Equal(t, "json", target.Logging.Format)
	assert.Equal(t, "/srv/factors.yaml", target.Parser.FactorsFile, "absent sections are untouched")
	assert.Equal(t, ":8080", target.Server.Addr)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
parser:
  concurrency: 2
  batch_size: 10
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, 2, target.Parser.Concurrency)
	assert.Empty(t, target.Parser.FactorsFile)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	for _, content := range []string{"", "# just comments\n"} {
		target := newTarget()
		require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
		assert.Equal(t, newTarget(), target)
	}
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	err := config.ShallowMergeYAML(newTarget(), writeOverlay(t, "{{{{not yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing overlay YAML")

	err = config.ShallowMergeYAML(newTarget(), "/nonexistent/overlay.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading overlay file")

	err = config.ShallowMergeYAML(newTarget(), writeOverlay(t, "server:\n  cache_ttl_seconds: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `applying overlay section "server"`)

	require.Error(t, config.ShallowMergeYAML(nil, "x"))
}
