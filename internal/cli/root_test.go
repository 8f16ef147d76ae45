package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/internal/config"
)

func TestNewRootCmd(t *testing.T) {
	cmd := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "ecotrack", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)

	for _, flag := range []string{"debug", "config", "log-format", "project-dir"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}

	for _, path := range [][]string{
		{"parse"}, {"classify"}, {"serve"},
		{"factors", "list"}, {"factors", "get"},
		{"config", "init"}, {"config", "show"}, {"config", "validate"},
	} {
		found, _, err := cmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestRoot_Version(t *testing.T) {
	setupCLITest(t)
	out, err := execute(t, nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestRoot_ConfigFlagErrors(t *testing.T) {
	home := setupCLITest(t)

	_, err := execute(t, nil, "--config", filepath.Join(home, "missing.yaml"), "classify", "bus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")

	broken := writeFile(t, filepath.Join(home, "broken.yaml"), "output: [unclosed\n")
	_, err = execute(t, nil, "--config", broken, "classify", "bus")
	require.Error(t, err)
}

func TestRoot_LogFileFromConfig(t *testing.T) {
	home := setupCLITest(t)
	logPath := filepath.Join(home, "logs", "ecotrack.log")
	t.Setenv(config.EnvLogFile, logPath)
	t.Setenv(config.EnvLogLevel, "debug")

	out, err := execute(t, nil, "classify", "bus")
	require.NoError(t, err)
	assert.Contains(t, out, "Logging to "+logPath)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "command started")
}

func TestRoot_DebugForcesStderr(t *testing.T) {
	home := setupCLITest(t)
	logPath := filepath.Join(home, "ecotrack.log")
	t.Setenv(config.EnvLogFile, logPath)

	out, err := execute(t, nil, "--debug", "classify", "bus")
	require.NoError(t, err)
	assert.NotContains(t, out, "Logging to")

	_, err = os.Stat(logPath)
	assert.True(t, os.IsNotExist(err))
}
