package settings

import (
	"fmt"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/utils"
)

type PrefsCmd struct {
	List bool `help:"List current preferences."`

	Timezone     *string `help:"IANA timezone used for 'today' and reminders (or Local)."`
	ReminderTime *string `help:"Daily reminder time (HH:MM)."`
}

func (c *PrefsCmd) Validate() error {
	if c.Timezone != nil && !utils.ValidateTimezone(*c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", *c.Timezone)
	}
	if c.ReminderTime != nil && !utils.ValidateTimeFormat(*c.ReminderTime) {
		return fmt.Errorf("invalid reminder time %q (expected HH:MM)", *c.ReminderTime)
	}
	return nil
}

func (c *PrefsCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	out := ctx.Stdout()

	if c.List {
		plan := "-"
		if prefs.IsPremium {
			plan = prefs.PremiumPlan
		}
		fmt.Fprintln(out, "Current Preferences:")
		fmt.Fprintf(out, "  Timezone:          %s\n", prefs.Timezone)
		fmt.Fprintf(out, "  Reminder Time:     %s\n", prefs.ReminderTime)
		fmt.Fprintf(out, "  Reminder Enabled:  %v\n", prefs.AlarmEnabled)
		fmt.Fprintln(out, "\nMembership:")
		fmt.Fprintf(out, "  Premium:           %v\n", prefs.IsPremium)
		fmt.Fprintf(out, "  Plan:              %s\n", plan)
		fmt.Fprintln(out, "\nCounters:")
		fmt.Fprintf(out, "  Saves Since Ad:    %d/%d\n", prefs.SaveCount, constants.AdEverySaves)
		fmt.Fprintf(out, "  Edits:             %d\n", prefs.EditCount)
		fmt.Fprintf(out, "  Review Requested:  %v\n", prefs.ReviewRequested)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		prefs.Timezone = *c.Timezone
		updated = true
	}
	if c.ReminderTime != nil {
		prefs.ReminderTime = *c.ReminderTime
		updated = true
	}

	if updated {
		if err := ctx.Store.SavePreferences(prefs); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}
		fmt.Fprintln(out, "Preferences updated successfully.")
	} else {
		fmt.Fprintln(out, "No changes specified. Use --list to view preferences or flags to update them.")
	}

	return nil
}
