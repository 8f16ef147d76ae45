package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/internal/config"
)

// setupCLITest isolates config, environment and working directory and
// registers cleanup for global state. It returns the user config directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, env := range []string{
		config.EnvOutputFormat, config.EnvLogFormat, config.EnvLogFile, config.EnvFactorsFile,
		config.EnvConcurrency, config.EnvServerAddr, config.EnvCacheTTL, config.EnvProjectDir,
	} {
		t.Setenv(env, "")
	}
	t.Setenv(config.EnvLogLevel, "error")
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns everything written
// to stdout and stderr.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
