package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/tada-remote/internal/model"
)

// JSON-backed snapshot of the dev API server. Single file, human-readable.
// Callers serialize access; the server holds its own lock around Save.

// Snapshot is everything the dev server needs to resume.
type Snapshot struct {
	NextUserID int          `json:"nextUserId"`
	NextTodoID int          `json:"nextTodoId"`
	Users      []model.User `json:"users"`
	Todos      []model.Todo `json:"todos"`
}

// Load reads the snapshot at path. A missing file is an empty snapshot.
func Load(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Snapshot{NextUserID: 1, NextTodoID: 1}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if snap.NextUserID < 1 {
		snap.NextUserID = 1
	}
	if snap.NextTodoID < 1 {
		snap.NextTodoID = 1
	}
	return &snap, nil
}

// Save writes the snapshot to path, replacing it atomically.
func Save(path string, snap *Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
