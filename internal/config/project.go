package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rshade/ecotrack/internal/logging"
)

// ProjectDirName is the project-local configuration directory.
const ProjectDirName = ".ecotrack"

// ErrNoProject is returned by FindProjectDir when no ancestor holds a
// ProjectDirName directory.
var ErrNoProject = errors.New("no .ecotrack project directory found")

// ResolveProjectDir determines the project-local .ecotrack directory.
// It checks, in order: flagValue, ECOTRACK_PROJECT_DIR, and a walk up from
// startDir. It returns an absolute path, or "" when there is no project.
// Nothing is created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	dir, err := FindProjectDir(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}
	return dir
}

// FindProjectDir walks up from startDir to the filesystem root and returns
// the first ProjectDirName directory found. The user config directory
// itself does not count as a project.
func FindProjectDir(startDir string) (string, error) {
	if startDir == "" {
		return "", ErrNoProject
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	userDir, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != userDir {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// NewWithProjectDir loads the global config, then shallow-merges
// projectDir/config.yaml on top. A missing or broken overlay leaves the
// global config in effect; a broken one is logged.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()
	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, ConfigFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}
	// The environment still wins over the project file.
	merged.applyEnvOverrides()
	return merged
}

// toAbsProjectDir converts dir to an absolute path ending in ".ecotrack".
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}
	return filepath.Join(abs, ProjectDirName)
}
