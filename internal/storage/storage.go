// Package storage records generator runs in a build journal.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/wiserone/internal/models"
)

// New returns the journal provider for path: a JSONStore when the path ends
// in .json, a SQLiteStore otherwise. The provider still needs Init.
func New(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}

// truncate keeps the first limit runs. A limit of zero or less keeps all.
func truncate(runs []models.Run, limit int) []models.Run {
	if limit > 0 && len(runs) > limit {
		return runs[:limit]
	}
	return runs
}
