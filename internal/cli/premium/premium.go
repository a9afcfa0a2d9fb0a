package premium

import (
	"fmt"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/report"
)

type PlansCmd struct{}

func (c *PlansCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	out := ctx.Stdout()
	fmt.Fprintln(out, "Premium removes ads and unlocks the achievement gallery.")
	fmt.Fprintln(out)
	fmt.Fprint(out, report.Plans(membership.Plans(), prefs))
	return nil
}

type SubscribeCmd struct {
	Plan string `arg:"" help:"Plan id (1_month, 6_month or 1_year)."`
}

func (c *SubscribeCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	wasPremium := prefs.IsPremium
	previous := prefs.PremiumPlan

	prefs, err = membership.Subscribe(prefs, c.Plan)
	if err != nil {
		return err
	}
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	plan, _ := membership.FindPlan(c.Plan)
	out := ctx.Stdout()
	switch {
	case wasPremium && previous == c.Plan:
		fmt.Fprintf(out, "You are already on the %s plan.\n", plan.Name)
	case wasPremium:
		fmt.Fprintf(out, "✓ Plan changed to %s (%s / %s)\n", plan.Name, plan.Price(), plan.Period)
	default:
		fmt.Fprintf(out, "✓ Welcome to premium! %s (%s / %s)\n", plan.Name, plan.Price(), plan.Period)
	}
	return nil
}

type CancelCmd struct{}

func (c *CancelCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	out := ctx.Stdout()
	if !prefs.IsPremium {
		fmt.Fprintln(out, "No active subscription.")
		return nil
	}
	if err := ctx.Store.SavePreferences(membership.Cancel(prefs)); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	fmt.Fprintln(out, "✓ Subscription cancelled. Ads will return on your next save.")
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	out := ctx.Stdout()
	if !prefs.IsPremium {
		fmt.Fprintln(out, "Free plan. See 'excusedex premium plans' to upgrade.")
		return nil
	}
	plan, ok := membership.FindPlan(prefs.PremiumPlan)
	if !ok {
		fmt.Fprintf(out, "Premium (unknown plan %q)\n", prefs.PremiumPlan)
		return nil
	}
	fmt.Fprintf(out, "Premium: %s (%s / %s)\n", plan.Name, plan.Price(), plan.Period)
	return nil
}
