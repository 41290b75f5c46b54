package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/wiserone/internal/backup"
	"github.com/julianstephens/wiserone/internal/logger"
	"github.com/julianstephens/wiserone/internal/migration"
	"github.com/julianstephens/wiserone/internal/models"
	"github.com/julianstephens/wiserone/migrations"
)

// startedAtLayout keeps every stored timestamp the same width so that
// ORDER BY started_at sorts chronologically.
const startedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

// Init opens the database, creating it if needed, and applies pending migrations.
func (s *SQLiteStore) Init() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, sub)
	s.backupBeforeMigrating(runner)

	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg, "journal", s.path)
	})
	return err
}

// backupBeforeMigrating snapshots an existing journal that is about to be
// migrated. A failed snapshot is logged and the migration goes ahead.
func (s *SQLiteStore) backupBeforeMigrating(runner *migration.Runner) {
	current, err := runner.GetCurrentVersion()
	if err != nil || current == 0 {
		return
	}
	pending, err := runner.PendingCount()
	if err != nil || pending == 0 {
		return
	}

	path, err := backup.NewManager(s.path).CreateBackup()
	if err != nil {
		logger.Warn("Failed to back up journal before migration", "journal", s.path, "error", err)
		return
	}
	logger.Info("Journal backed up before migration", "backup", path, "pending", pending)
}

func (s *SQLiteStore) RecordRun(run models.Run) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (id, command, source, started_at) VALUES (?, ?, ?, ?)",
		run.ID, run.Command, run.Source, run.StartedAt.UTC().Format(startedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO pages (run_id, position, filename, date_key, canonical, is_index, quote_text, author, date_added, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range run.Pages {
		isIndex := 0
		if p.IsIndex {
			isIndex = 1
		}
		_, err := stmt.Exec(
			run.ID, i, p.Filename, p.DateKey, p.Canonical, isIndex,
			p.Quote.Text, p.Quote.Author, p.Quote.DateAdded, p.Quote.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert page %s: %w", p.Filename, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first. A limit of zero or less returns all.
func (s *SQLiteStore) ListRuns(limit int) ([]models.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(
		"SELECT id, command, source, started_at FROM runs ORDER BY started_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		var startedAt string
		if err := rows.Scan(&run.ID, &run.Command, &run.Source, &startedAt); err != nil {
			return nil, err
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid started_at for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		pages, err := s.getPages(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Pages = pages
	}

	return runs, nil
}

func (s *SQLiteStore) getPages(runID string) ([]models.Page, error) {
	rows, err := s.db.Query(`
		SELECT filename, date_key, canonical, is_index, quote_text, author, date_added, image_url
		FROM pages WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var p models.Page
		var isIndex int
		if err := rows.Scan(
			&p.Filename, &p.DateKey, &p.Canonical, &isIndex,
			&p.Quote.Text, &p.Quote.Author, &p.Quote.DateAdded, &p.Quote.ImageURL,
		); err != nil {
			return nil, err
		}
		p.IsIndex = isIndex != 0
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPath returns the path of the journal database.
func (s *SQLiteStore) GetPath() string {
	return s.path
}
