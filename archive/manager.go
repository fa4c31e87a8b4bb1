package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrEmptyRunID is returned when saving a record without a run id
var ErrEmptyRunID = errors.New("archive: record has no run id")

// Manager handles save/load of run records under one directory
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a run file
func (m *Manager) FilePath(runID string) string {
	return filepath.Join(m.basePath, runID+".toml")
}

// Exists checks if a run file exists
func (m *Manager) Exists(runID string) bool {
	_, err := os.Stat(m.FilePath(runID))
	return err == nil
}

// Save writes the record to disk
func (m *Manager) Save(rec Record) error {
	if rec.RunID == "" {
		return ErrEmptyRunID
	}
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("archive: encode %s: %w", rec.RunID, err)
	}

	return os.WriteFile(m.FilePath(rec.RunID), data, 0644)
}

// Load reads a record from disk
func (m *Manager) Load(runID string) (Record, error) {
	var rec Record

	data, err := os.ReadFile(m.FilePath(runID))
	if err != nil {
		return rec, err
	}

	if err := toml.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("archive: decode %s: %w", runID, err)
	}

	return rec, nil
}

// List returns the archived run ids in sorted order; a missing directory is empty
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.basePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".toml"))
	}
	slices.Sort(ids)
	return ids, nil
}
