// Package version exposes build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/rshade/ecotrack/pkg/version.version=v0.3.0 \
//	  -X github.com/rshade/ecotrack/pkg/version.gitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/rshade/ecotrack/pkg/version.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
)

//nolint:gochecknoglobals // Set at link time.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of this build.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit this build was made from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line description of the build for --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", version, gitCommit, buildDate, runtime.Version())
}
