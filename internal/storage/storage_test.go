package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/wiserone/internal/models"
)

func testRun(id string, startedAt time.Time, pages ...models.Page) models.Run {
	return models.Run{
		ID:        id,
		Command:   "all",
		Source:    "quotes.json",
		StartedAt: startedAt,
		Pages:     pages,
	}
}

var (
	pageOld = models.Page{
		Filename:  "2024_01_04.html",
		DateKey:   "2024_01_04",
		Canonical: "https://wiserone.com/2024_01_04.html",
		Quote: models.Quote{
			Text:      "Knowing yourself is the beginning of all wisdom.",
			Author:    "Aristotle",
			DateAdded: "2024-01-04T07:30:00",
			ImageURL:  "https://kura.pro/aristotle.webp",
		},
	}
	pageToday = models.Page{
		Filename:  "2024_01_05.html",
		DateKey:   "2024_01_05",
		Canonical: "https://wiserone.com/index.html",
		IsIndex:   true,
		Quote: models.Quote{
			Text:      "Luck is what happens when preparation meets opportunity.",
			Author:    "Seneca",
			DateAdded: "2024-01-05T08:00:00",
		},
	}
)

type storeFactory struct {
	name string
	new  func(dir string) Provider
}

var factories = []storeFactory{
	{name: "sqlite", new: func(dir string) Provider { return NewSQLiteStore(filepath.Join(dir, "journal.db")) }},
	{name: "json", new: func(dir string) Provider { return NewJSONStore(filepath.Join(dir, "journal.json")) }},
}

func openStore(t *testing.T, f storeFactory, dir string) Provider {
	t.Helper()
	store := f.new(dir)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := openStore(t, f, t.TempDir())

			first := testRun("run-1", time.Date(2024, 1, 4, 7, 0, 0, 0, time.UTC), pageOld)
			second := testRun("run-2", time.Date(2024, 1, 5, 7, 0, 0, 0, time.UTC), pageOld, pageToday)
			require.NoError(t, store.RecordRun(first))
			require.NoError(t, store.RecordRun(second))

			runs, err := store.ListRuns(0)
			require.NoError(t, err)
			require.Len(t, runs, 2)

			assert.Equal(t, "run-2", runs[0].ID)
			assert.Equal(t, "run-1", runs[1].ID)
			assert.True(t, second.StartedAt.Equal(runs[0].StartedAt))
			assert.Equal(t, "all", runs[0].Command)
			assert.Equal(t, "quotes.json", runs[0].Source)
			assert.Equal(t, []models.Page{pageOld, pageToday}, runs[0].Pages)

			index, ok := runs[0].IndexPage()
			require.True(t, ok)
			assert.Equal(t, "2024_01_05.html", index.Filename)
		})
	}
}

func TestListRunsLimit(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := openStore(t, f, t.TempDir())

			base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			for i, id := range []string{"a", "b", "c"} {
				require.NoError(t, store.RecordRun(testRun(id, base.Add(time.Duration(i)*time.Hour))))
			}

			runs, err := store.ListRuns(2)
			require.NoError(t, err)
			require.Len(t, runs, 2)
			assert.Equal(t, "c", runs[0].ID)
			assert.Equal(t, "b", runs[1].ID)
			assert.Empty(t, runs[0].Pages)
		})
	}
}

func TestRecordRunDuplicateID(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := openStore(t, f, t.TempDir())

			run := testRun("dup", time.Now())
			require.NoError(t, store.RecordRun(run))
			assert.Error(t, store.RecordRun(run))
		})
	}
}

func TestRunsPersistAcrossReopen(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			dir := t.TempDir()

			store := f.new(dir)
			require.NoError(t, store.Init())
			require.NoError(t, store.RecordRun(testRun("kept", time.Date(2024, 1, 5, 7, 0, 0, 0, time.UTC), pageToday)))
			require.NoError(t, store.Close())

			reopened := openStore(t, f, dir)
			runs, err := reopened.ListRuns(10)
			require.NoError(t, err)
			require.Len(t, runs, 1)
			assert.Equal(t, "kept", runs[0].ID)
			assert.Equal(t, []models.Page{pageToday}, runs[0].Pages)
		})
	}
}

func TestUninitializedStore(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := f.new(t.TempDir())

			assert.Error(t, store.RecordRun(testRun("x", time.Now())))
			_, err := store.ListRuns(1)
			assert.Error(t, err)
		})
	}
}

func TestJSONStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	err := NewJSONStore(path).Init()
	assert.ErrorContains(t, err, "failed to parse journal")
}

func TestNew(t *testing.T) {
	tests := []struct {
		path     string
		wantJSON bool
	}{
		{path: "wiserone.db", wantJSON: false},
		{path: "journal/runs.json", wantJSON: true},
		{path: "RUNS.JSON", wantJSON: true},
		{path: "wiserone", wantJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			store := New(tt.path)
			_, isJSON := store.(*JSONStore)
			assert.Equal(t, tt.wantJSON, isJSON)
			assert.Equal(t, tt.path, store.GetPath())
		})
	}
}

func TestSQLiteStoreBacksUpBeforeMigrating(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	store := NewSQLiteStore(path)
	require.NoError(t, store.Init())
	require.NoError(t, store.RecordRun(testRun("before", time.Date(2024, 1, 5, 7, 0, 0, 0, time.UTC))))

	// Roll the schema back one version so the next Init has work to do
	_, err := store.db.Exec("DROP INDEX idx_pages_filename")
	require.NoError(t, err)
	_, err = store.db.Exec("UPDATE schema_version SET version = 1")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := openStore(t, factories[0], dir)
	runs, err := reopened.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSQLiteStoreFreshDatabaseSkipsBackup(t *testing.T) {
	dir := t.TempDir()
	openStore(t, factories[0], dir)

	_, err := os.Stat(filepath.Join(dir, "backups"))
	assert.True(t, os.IsNotExist(err))
}

func TestListRunsOrdersWithinSameSecond(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := openStore(t, f, t.TempDir())

			base := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
			require.NoError(t, store.RecordRun(testRun("whole", base)))
			require.NoError(t, store.RecordRun(testRun("half", base.Add(500*time.Millisecond))))
			require.NoError(t, store.RecordRun(testRun("tenth", base.Add(100*time.Millisecond))))
			require.NoError(t, store.RecordRun(testRun("fifteen", base.Add(150*time.Millisecond))))

			runs, err := store.ListRuns(0)
			require.NoError(t, err)

			var ids []string
			for _, run := range runs {
				ids = append(ids, run.ID)
			}
			assert.Equal(t, []string{"half", "fifteen", "tenth", "whole"}, ids)
			assert.True(t, base.Add(500*time.Millisecond).Equal(runs[0].StartedAt))
		})
	}
}

func TestSQLiteStoreDeletingRunRemovesPages(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.RecordRun(testRun("gone", time.Date(2024, 1, 5, 7, 0, 0, 0, time.UTC), pageOld, pageToday)))

	_, err := store.db.Exec("DELETE FROM runs WHERE id = ?", "gone")
	require.NoError(t, err)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM pages WHERE run_id = ?", "gone").Scan(&count))
	assert.Zero(t, count)
}

func TestSQLiteStoreRejectsOrphanPages(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	_, err := store.db.Exec(
		"INSERT INTO pages (run_id, position, filename, date_key, canonical, is_index, quote_text, author, date_added, image_url) VALUES (?, 0, 'a.html', '2024_01_05', '', 0, 'x', '', '', '')",
		"missing",
	)
	assert.Error(t, err)
}
