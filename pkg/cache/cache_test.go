package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	return tmpDir
}

func TestKey(t *testing.T) {
	base := Inputs{
		Resume:   "Jane Doe\nEngineer",
		Example:  "Example resume",
		Crew:     "agents: []",
		Language: "English",
		Model:    "gpt-4",
	}
	key := Key(base)
	assert.Len(t, key, 64)
	assert.Equal(t, key, Key(base), "deterministic")

	tests := []struct {
		name   string
		modify func(*Inputs)
	}{
		{"resume", func(in *Inputs) { in.Resume += "!" }},
		{"example", func(in *Inputs) { in.Example = "" }},
		{"crew", func(in *Inputs) { in.Crew = "agents: [x]" }},
		{"language", func(in *Inputs) { in.Language = "German" }},
		{"model", func(in *Inputs) { in.Model = "claude-sonnet-4" }},
		{"text moved between fields", func(in *Inputs) {
			in.Resume, in.Example = in.Resume+in.Example, ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.modify(&in)
			assert.NotEqual(t, key, Key(in))
		})
	}
}

func TestReadWrite(t *testing.T) {
	tmpDir := chdir(t)
	key := Key(Inputs{Resume: "r", Model: "gpt-4"})

	assert.False(t, Exists(key))
	_, err := Read(key)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, Write(key, Entry{Model: "gpt-4", Language: "English", Text: "Skills\nGo"}))
	assert.True(t, Exists(key))
	assert.FileExists(t, filepath.Join(tmpDir, ".atscv", "cache", "runs", key+".json"))

	e, err := Read(key)
	require.NoError(t, err)
	assert.Equal(t, "Skills\nGo", e.Text)
	assert.Equal(t, "gpt-4", e.Model)
	assert.False(t, e.CreatedAt.IsZero())

	require.NoError(t, Clear())
	assert.False(t, Exists(key))
}

func TestReadCorrupt(t *testing.T) {
	chdir(t)
	require.NoError(t, os.MkdirAll(Dir, 0o755))
	require.NoError(t, os.WriteFile(Path("bad"), []byte("{"), 0o644))

	_, err := Read("bad")
	assert.ErrorContains(t, err, "failed to parse cache")
}
