package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/excusedex/internal/backup"
	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/constants"
)

func manager(ctx *cli.Context) (*backup.Manager, error) {
	path := ctx.SQLitePath()
	if path == "" {
		return nil, fmt.Errorf("snapshots are only supported for SQLite databases, use 'excusedex export' instead")
	}
	return backup.NewManager(path), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	out := ctx.Stdout()
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups found.")
		fmt.Fprintf(out, "Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Fprintf(out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Fprintf(out, "  %s  %s  (%s, %s)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			humanize.Bytes(uint64(b.Size)),
			humanize.RelTime(b.Timestamp, ctx.Clock(), "ago", "from now"),
		)
	}
	fmt.Fprintf(out, "\nBackup directory: %s\n", mgr.BackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}

	backupPath, err := resolveBackupPath(c.BackupFile, mgr.BackupDir())
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	if !c.Yes {
		fmt.Fprintln(out, "⚠️  WARNING: This will replace your current database with the backup.")
		fmt.Fprintln(out, "⚠️  IMPORTANT: All excusedex processes (including the TUI) must be stopped before restore.")
		fmt.Fprintln(out, "A backup of your current database will be created before restoring.")
		fmt.Fprintf(out, "\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Restore cancelled.")
			return nil
		}
	}

	// Close the current store connection before restoring
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Database restored successfully!")
	if safety != "" {
		fmt.Fprintf(out, "  Previous database saved as %s\n", filepath.Base(safety))
	}
	return ctx.Store.Load()
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare filename inside the backup directory.
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
