package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/wiserone/internal/backup"
	"github.com/julianstephens/wiserone/internal/storage"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the build journal." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List journal snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the journal with a snapshot."`
}

// backupManager returns the snapshot manager for the configured journal.
// Only SQLite journals can be snapshotted.
func (ctx *Context) backupManager() (*backup.Manager, error) {
	if ctx.Journal == nil {
		return nil, fmt.Errorf("build journal is disabled or unavailable")
	}
	if _, ok := ctx.Journal.(*storage.SQLiteStore); !ok {
		return nil, fmt.Errorf("backups require a SQLite journal, got %s", ctx.Journal.GetPath())
	}
	return backup.NewManager(ctx.Journal.GetPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}

	path, err := mgr.CreateBackup()
	if err != nil {
		return err
	}
	ctx.printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.printf("No backups found.\n")
		ctx.printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		ctx.printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format(time.DateTime), filepath.Base(b.Path), float64(b.Size)/1024)
	}
	ctx.printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Snapshot file name or path." type:"string"`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}

	path := c.Backup
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.GetBackupDir(), path)
	}

	// The journal file is replaced underneath the open connection otherwise
	if err := ctx.Close(); err != nil {
		return fmt.Errorf("failed to close journal: %w", err)
	}
	ctx.Journal = nil

	if err := mgr.RestoreBackup(path); err != nil {
		return err
	}
	ctx.printf("✓ Journal restored from %s\n", filepath.Base(path))
	return nil
}
