package excuses

import (
	"errors"
	"fmt"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/storage"
)

type DeleteCmd struct {
	ID int64 `arg:"" help:"Excuse id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteExcuse(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: #%d", storage.ErrNotFound, c.ID)
		}
		return fmt.Errorf("failed to delete excuse: %w", err)
	}
	fmt.Fprintf(ctx.Stdout(), "✓ Deleted excuse #%d\n", c.ID)
	return nil
}

type ClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	if !c.Yes {
		ok, err := ctx.Confirm("Delete every excuse? This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	n, err := ClearAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Deleted %d excuses\n", n)
	return nil
}

// ClearAll removes every record and resets the ad counter.
func ClearAll(ctx *cli.Context) (int64, error) {
	n, err := ctx.Store.DeleteAllExcuses()
	if err != nil {
		return 0, fmt.Errorf("failed to clear excuses: %w", err)
	}
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return n, fmt.Errorf("failed to get preferences: %w", err)
	}
	prefs.SaveCount = 0
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return n, fmt.Errorf("failed to save preferences: %w", err)
	}
	return n, nil
}
