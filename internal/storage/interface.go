package storage

import "github.com/julianstephens/wiserone/internal/models"

// Provider is the build journal.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Runs
	RecordRun(models.Run) error
	ListRuns(limit int) ([]models.Run, error)

	// Utils
	GetPath() string
}
