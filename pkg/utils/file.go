package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// WriteFile creates parent directories and overwrites path
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WithinDir resolves name relative to root and rejects paths that escape it.
// Agent-supplied file names go through here before anything is written.
func WithinDir(root, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := name
	if !filepath.IsAbs(target) {
		target = filepath.Join(absRoot, target)
	}
	target = filepath.Clean(target)
	rel, err := filepath.Rel(absRoot, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", name, root)
	}
	return target, nil
}

// EnsureGitignore creates dir/.gitignore ignoring everything, so the
// workspace directory stays out of version control.
func EnsureGitignore(dir string) error {
	path := filepath.Join(dir, ".gitignore")
	if FileExists(path) {
		return nil
	}
	return WriteFile(path, "*\n")
}
