package system

import (
	"fmt"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate is not supported for this storage backend")
	}

	out := ctx.Stdout()
	count, err := m.Migrate(func(msg string) {
		fmt.Fprintln(out, msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Fprintln(out, "No migrations to apply. Database is up to date.")
	} else {
		fmt.Fprintf(out, "\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
