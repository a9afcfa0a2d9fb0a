package insights

import (
	"fmt"

	"github.com/julianstephens/excusedex/internal/achievements"
	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/report"
)

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	all, err := ctx.Store.GetAllExcuses()
	if err != nil {
		return fmt.Errorf("failed to list excuses: %w", err)
	}
	list := achievements.Evaluate(all)
	fmt.Fprint(ctx.Stdout(), report.Achievements(list, membership.AchievementsUnlocked(prefs)))
	return nil
}
