package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/julianstephens/wiserone/internal/models"
)

// Journal is the on-disk layout of a JSON journal.
type Journal struct {
	Version int          `json:"version"`
	Runs    []models.Run `json:"runs"`
}

type JSONStore struct {
	path    string
	journal *Journal
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

// Init loads the journal file, creating an empty one if it doesn't exist.
func (s *JSONStore) Init() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read journal: %w", err)
		}
		s.journal = &Journal{Version: 1}
		return s.save()
	}

	s.journal = &Journal{}
	if err := json.Unmarshal(data, s.journal); err != nil {
		return fmt.Errorf("failed to parse journal: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.journal, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize journal: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}

	return nil
}

func (s *JSONStore) RecordRun(run models.Run) error {
	if s.journal == nil {
		return fmt.Errorf("storage not loaded")
	}

	for _, existing := range s.journal.Runs {
		if existing.ID == run.ID {
			return fmt.Errorf("run already recorded: %s", run.ID)
		}
	}

	s.journal.Runs = append(s.journal.Runs, run)
	return s.save()
}

// ListRuns returns the most recent runs first. A limit of zero or less returns all.
func (s *JSONStore) ListRuns(limit int) ([]models.Run, error) {
	if s.journal == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	runs := slices.Clone(s.journal.Runs)
	slices.SortStableFunc(runs, func(a, b models.Run) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return truncate(runs, limit), nil
}

// GetPath returns the path of the journal file.
func (s *JSONStore) GetPath() string {
	return s.path
}
