package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/excusedex/internal/backup"
	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/storage"
	"github.com/julianstephens/excusedex/internal/storage/postgres"
	"github.com/julianstephens/excusedex/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	if c.Force {
		dbPath := ctx.SQLitePath()
		if dbPath == "" {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Fprintf(out, "Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized excusedex storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(out, "Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintln(out, "Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context, sourcePath string) error {
	var source storage.Provider
	if storage.IsPostgresConnString(sourcePath) {
		if err := postgres.ValidateConnString(sourcePath); err != nil {
			return err
		}
		source = postgres.New(sourcePath)
	} else {
		source = sqlite.NewStore(sourcePath)
	}

	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	out := ctx.Stdout()
	fmt.Fprintln(out, "  Copying preferences...")
	prefs, err := source.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences from source: %w", err)
	}
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences to destination: %w", err)
	}

	fmt.Fprintln(out, "  Copying excuses...")
	excuses, err := source.GetAllExcuses()
	if err != nil {
		return fmt.Errorf("failed to get excuses from source: %w", err)
	}
	n, err := backup.Restore(ctx.Store, excuses)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "    Copied %d excuses\n", n)
	return nil
}
