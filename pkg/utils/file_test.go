package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	require.NoError(t, WriteFile(path, "first"))
	require.NoError(t, WriteFile(path, "second"))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Dir(path)))
}

func TestWithinDir(t *testing.T) {
	root := t.TempDir()

	got, err := WithinDir(root, "drafts/resume.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "drafts", "resume.md"), got)

	for _, bad := range []string{"", "../escape.txt", "a/../../escape.txt", "/etc/passwd"} {
		_, err := WithinDir(root, bad)
		assert.Error(t, err, bad)
	}
}

func TestEnsureGitignore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".atscv")
	require.NoError(t, EnsureGitignore(dir))
	got, err := ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "*\n", got)
}
