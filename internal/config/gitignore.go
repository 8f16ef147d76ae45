package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// gitignoreContent keeps per-user files out of a committed .ecotrack/ directory.
const gitignoreContent = `# ecotrack project-local data (auto-generated)
# config.yaml and factor tables are tracked; logs and exports are not.
*.log
*.ndjson
`

// GitignoreContent returns the .gitignore written by EnsureGitignore.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore creates dir/.gitignore if it does not exist and reports
// whether it did. An existing file is never overwritten.
func EnsureGitignore(dir string) (bool, error) {
	gitignorePath := filepath.Join(dir, ".gitignore")

	_, err := os.Stat(gitignorePath)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking .gitignore at %s: %w", gitignorePath, err)
	}

	if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, mkdirErr)
	}

	//nolint:gosec // .gitignore must be world-readable (0644).
	if writeErr := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644); writeErr != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", gitignorePath, writeErr)
	}
	return true, nil
}
