// Package backup maintains a flat JSON copy of the primary collections.
// The mirror is rewritten after every successful mutation and read only as
// a fallback source when the primary store is unavailable at startup.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"expense-tracker/models"
)

type Mirror struct {
	path string
	mu   sync.Mutex
}

func NewMirror(path string) *Mirror {
	return &Mirror{path: path}
}

// Write replaces the mirror with the given snapshot. The file is written
// to a temp name and renamed so readers never observe a partial mirror.
func (m *Mirror) Write(snap models.BackupSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace backup: %w", err)
	}
	return nil
}

// Read loads the last written snapshot.
func (m *Mirror) Read() (models.BackupSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var snap models.BackupSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("failed to decode backup: %w", err)
	}
	return snap, nil
}
