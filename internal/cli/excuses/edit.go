package excuses

import (
	"errors"
	"fmt"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/storage"
)

type EditCmd struct {
	ID       int64   `arg:"" help:"Excuse id."`
	Task     *string `help:"New task text."`
	Reason   *string `help:"New reason text."`
	Date     *string `help:"New date (YYYY-MM-DD)."`
	Category *string `help:"New category (health|daily|growth|other)."`
	Score    *int    `help:"New candor score (1-5)."`
}

func (c *EditCmd) Validate() error {
	if c.Score != nil && (*c.Score < constants.MinScore || *c.Score > constants.MaxScore) {
		return fmt.Errorf("score must be between %d and %d", constants.MinScore, constants.MaxScore)
	}
	return nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	excuse, err := ctx.Store.GetExcuse(c.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: #%d", storage.ErrNotFound, c.ID)
		}
		return fmt.Errorf("failed to get excuse: %w", err)
	}

	updated := false
	if c.Task != nil {
		excuse.Task = *c.Task
		updated = true
	}
	if c.Reason != nil {
		excuse.Reason = *c.Reason
		updated = true
	}
	if c.Date != nil {
		excuse.Date = *c.Date
		updated = true
	}
	if c.Category != nil {
		category, err := models.ParseCategory(*c.Category)
		if err != nil {
			return err
		}
		excuse.Category = category
		updated = true
	}
	if c.Score != nil {
		excuse.Score = *c.Score
		updated = true
	}

	out := ctx.Stdout()
	if !updated {
		fmt.Fprintln(out, "No changes specified.")
		return nil
	}
	excuse = excuse.Normalize()
	if err := excuse.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateExcuse(excuse); err != nil {
		return fmt.Errorf("failed to update excuse: %w", err)
	}
	fmt.Fprintf(out, "✓ Updated %s\n", cli.FormatExcuse(excuse))

	BumpEditCount(ctx)
	return nil
}

// BumpEditCount records one more edit in the preferences.
func BumpEditCount(ctx *cli.Context) {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		logger.Warn("Failed to load preferences for edit count", "error", err)
		return
	}
	prefs.EditCount++
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		logger.Warn("Failed to save edit count", "error", err)
	}
}
