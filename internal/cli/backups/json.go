package backups

import (
	"fmt"
	"os"

	"github.com/julianstephens/excusedex/internal/backup"
	"github.com/julianstephens/excusedex/internal/cli"
)

type ExportCmd struct {
	File string `arg:"" help:"Destination JSON file, or - for stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllExcuses()
	if err != nil {
		return fmt.Errorf("failed to list excuses: %w", err)
	}

	if c.File == "-" {
		return backup.Export(ctx.Stdout(), all)
	}

	f, err := os.Create(c.File)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.File, err)
	}
	if err := backup.Export(f, all); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.File, err)
	}
	fmt.Fprintf(ctx.Stdout(), "✓ Exported %d excuses to %s\n", len(all), c.File)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"JSON backup file to import." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.File, err)
	}
	defer f.Close()

	excuses, err := backup.Import(f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	ctx.PerformAutomaticBackup()

	n, err := backup.Restore(ctx.Store, excuses)
	if err != nil {
		return fmt.Errorf("import failed after %d records: %w", n, err)
	}
	fmt.Fprintf(ctx.Stdout(), "✓ Imported %d excuses from %s\n", n, c.File)
	return nil
}
