package insights

import (
	"fmt"
	"strings"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/report"
	"github.com/julianstephens/excusedex/internal/utils"
)

type CalendarCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
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

	all, err := ctx.Store.GetAllExcuses()
	if err != nil {
		return fmt.Errorf("failed to list excuses: %w", err)
	}

	counts := report.CountsByDate(all)
	out := ctx.Stdout()
	fmt.Fprint(out, report.Calendar(month, counts, today.Format(constants.DateFormat)))

	monthKey := utils.MonthKey(month)
	total, days := 0, 0
	for date, n := range counts {
		if strings.HasPrefix(date, monthKey+"-") {
			total += n
			days++
		}
	}
	fmt.Fprintf(out, "\n%d excuses on %d days\n", total, days)
	return nil
}
