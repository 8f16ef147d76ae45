package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
	assert.NotEmpty(t, GetGitCommit())
	assert.NotEmpty(t, GetBuildDate())
}

func TestString(t *testing.T) {
	s := String()
	assert.Contains(t, s, GetVersion())
	assert.Contains(t, s, "commit "+GetGitCommit())
	assert.Contains(t, s, runtime.Version())
}
