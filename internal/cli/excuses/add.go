package excuses

import (
	"fmt"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/models"
)

type AddCmd struct {
	Task     string `arg:"" help:"The thing you did not do."`
	Reason   string `arg:"" help:"Why it did not happen."`
	Date     string `short:"d" help:"Date (YYYY-MM-DD, today or yesterday). Defaults to today."`
	Category string `short:"c" help:"Category (health|daily|growth|other)." default:"other"`
	Score    int    `short:"s" help:"Candor score from 1 (mild) to 5 (shameless)." default:"3"`
}

func (c *AddCmd) Validate() error {
	if c.Score < constants.MinScore || c.Score > constants.MaxScore {
		return fmt.Errorf("score must be between %d and %d", constants.MinScore, constants.MaxScore)
	}
	if _, err := models.ParseCategory(c.Category); err != nil {
		return err
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	today, err := ctx.Today(prefs)
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(c.Date, today)
	if err != nil {
		return err
	}
	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}

	excuse := models.Excuse{
		Date:     date,
		Task:     c.Task,
		Reason:   c.Reason,
		Category: category,
		Score:    c.Score,
	}.Normalize()
	if err := excuse.Validate(); err != nil {
		return err
	}

	id, err := ctx.Store.AddExcuse(excuse)
	if err != nil {
		return fmt.Errorf("failed to save excuse: %w", err)
	}
	out := ctx.Stdout()
	fmt.Fprintf(out, "✓ Excuse #%d saved for %s\n", id, date)

	AfterSave(ctx, prefs)
	return nil
}

// AfterSave runs the ad and review gates that follow every save. Failures
// here are logged and never fail the save itself.
func AfterSave(ctx *cli.Context, prefs models.Preferences) {
	out := ctx.Stdout()

	prefs, showAd := membership.ShouldShowAd(prefs)
	if showAd {
		fmt.Fprintln(out, "📺 Sponsored: this excuse was brought to you by tomorrow. Go premium to skip ads.")
	}

	total, err := ctx.Store.CountExcuses()
	if err != nil {
		logger.Warn("Failed to count excuses for review prompt", "error", err)
	} else {
		var askReview bool
		prefs, askReview = membership.ShouldRequestReview(prefs, total)
		if askReview {
			fmt.Fprintf(out, "⭐ %d excuses logged! If %s helps, consider leaving a review.\n", total, constants.AppName)
		}
	}

	if err := ctx.Store.SavePreferences(prefs); err != nil {
		logger.Warn("Failed to save preferences after save", "error", err)
	}
}
