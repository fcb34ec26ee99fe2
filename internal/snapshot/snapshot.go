// Package snapshot persists the full store state as one opaque JSON
// document.  The server loads a snapshot at startup and writes one on
// graceful shutdown; the store itself never touches the encoding.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cinema-box-office/internal/repository"
)

// Load reads and decodes the snapshot at path.  It returns
// os.ErrNotExist (wrapped) when no snapshot has been written yet, so
// callers can fall back to seeding.
func Load(path string) (*repository.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var state repository.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &state, nil
}

// Save encodes the state and writes it to path, creating parent
// directories as needed.  The file is written to a temporary name
// first and renamed into place so a crash mid-write never leaves a
// truncated snapshot behind.
func Save(path string, state *repository.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
