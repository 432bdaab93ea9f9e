package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectDir is the directory name marking a project-local data root.
const ProjectDir = ".notekeep"

// FindRoot looks upwards from startDir for a ProjectDir directory and returns
// the directory containing it.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, ProjectDir)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("root not found")
}

// ResolveDataDir picks where local data lives: override when set, then the
// nearest project root above startDir, then the per-user data directory.
func ResolveDataDir(startDir, override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}
	if root, err := FindRoot(startDir); err == nil {
		return filepath.Join(root, ProjectDir), nil
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "notekeep"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "notekeep"), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
