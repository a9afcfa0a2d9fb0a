package insights

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/report"
	"github.com/julianstephens/excusedex/internal/stats"
	"github.com/julianstephens/excusedex/internal/watch"
)

type StatsCmd struct {
	Month string `short:"m" help:"Month to summarize (YYYY-MM). Defaults to the current month."`
	JSON  bool   `help:"Print the summary as JSON."`
	Watch bool   `short:"w" help:"Recompute whenever the database changes. SQLite only."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	today, err := ctx.Today(prefs)
	if err != nil {
		return err
	}
	month, err := cli.ParseMonth(c.Month, today)
	if err != nil {
		return err
	}

	if !c.Watch {
		return c.print(ctx, month)
	}

	path := ctx.SQLitePath()
	if path == "" {
		return fmt.Errorf("--watch is only supported for SQLite databases")
	}
	w, err := watch.New(path)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := c.print(ctx, month); err != nil {
		return err
	}

	done := ctx.Context().Done()
	for {
		select {
		case <-done:
			return nil
		case _, ok := <-w.Events():
			if !ok {
				return nil
			}
			logger.Debug("database changed, recomputing stats")
			if err := c.print(ctx, month); err != nil {
				return err
			}
		}
	}
}

func (c *StatsCmd) print(ctx *cli.Context, month time.Time) error {
	all, err := ctx.Store.GetAllExcuses()
	if err != nil {
		return fmt.Errorf("failed to list excuses: %w", err)
	}
	summary := stats.Compute(all, month)

	out := ctx.Stdout()
	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	if c.Watch {
		fmt.Fprintf(out, "\n── %s ──\n", ctx.Clock().Format(time.TimeOnly))
	}
	fmt.Fprint(out, report.Stats(summary))
	return nil
}
