package excuses

import (
	"fmt"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/models"
)

type ListCmd struct {
	Date string `short:"d" help:"Date to show (YYYY-MM-DD, today or yesterday). Defaults to today."`
	All  bool   `short:"a" help:"List every excuse, newest first."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	out := ctx.Stdout()

	if c.All {
		all, err := ctx.Store.GetAllExcuses()
		if err != nil {
			return fmt.Errorf("failed to list excuses: %w", err)
		}
		if len(all) == 0 {
			fmt.Fprintln(out, "No excuses yet. Log one with 'excusedex add'.")
			return nil
		}
		for _, e := range all {
			fmt.Fprintln(out, cli.FormatExcuse(e))
		}
		fmt.Fprintf(out, "\n%d excuses total\n", len(all))
		return nil
	}

	today, err := ctx.Today(prefs)
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(c.Date, today)
	if err != nil {
		return err
	}
	list, err := ctx.Store.GetExcusesByDate(date)
	if err != nil {
		return fmt.Errorf("failed to list excuses: %w", err)
	}

	fmt.Fprintf(out, "Excuses for %s:\n\n", date)
	if len(list) == 0 {
		fmt.Fprintln(out, "  Nothing here. Log what you skipped today and why.")
		return nil
	}
	for _, line := range DayLines(list, prefs.IsPremium) {
		fmt.Fprintf(out, "  %s\n", line)
	}
	return nil
}

// SponsoredLine is the placeholder row shown between entries for free users.
const SponsoredLine = "── Sponsored ── Premium members never see this row."

// DayLines renders a day's records with sponsored rows interleaved.
func DayLines(list []models.Excuse, premium bool) []string {
	lines := make([]string, 0, len(list))
	for i, e := range list {
		lines = append(lines, cli.FormatExcuse(e))
		if membership.IsAdSlot(i, premium) {
			lines = append(lines, SponsoredLine)
		}
	}
	return lines
}
