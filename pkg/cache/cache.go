// Package cache stores the workflow's aggregate text so a run with the same
// inputs can skip the agents and go straight to formatting.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Dir is relative to the working directory
const Dir = ".atscv/cache/runs"

// Entry is one cached workflow result.
type Entry struct {
	Model     string    `json:"model"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
}

// Inputs are everything that can change the workflow's output.
type Inputs struct {
	Resume   string
	Example  string // extracted text of the example document
	Crew     string // crew definition as loaded
	Language string
	Model    string
}

// Key computes a deterministic SHA256 hash of the inputs. Fields are
// separated so moving text between them changes the key.
func Key(in Inputs) string {
	h := sha256.New()
	for _, part := range []string{in.Resume, in.Example, in.Crew, in.Language, in.Model} {
		fmt.Fprintf(h, "%d:", len(part))
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Path returns the cache file for key
func Path(key string) string {
	return filepath.Join(Dir, key+".json")
}

// Read returns the entry for key; a miss is an fs.ErrNotExist error.
func Read(key string) (*Entry, error) {
	data, err := os.ReadFile(Path(key))
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to parse cache: %w", err)
	}
	return &e, nil
}

// Write stores e under key, replacing any previous entry.
func Write(key string, e Entry) error {
	path := Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Exists checks if cache exists for a key
func Exists(key string) bool {
	_, err := os.Stat(Path(key))
	return err == nil
}

// Clear removes every cached entry.
func Clear() error {
	return os.RemoveAll(Dir)
}
