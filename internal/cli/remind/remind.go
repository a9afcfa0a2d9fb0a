package remind

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/notifier"
	"github.com/julianstephens/excusedex/internal/reminder"
	"github.com/julianstephens/excusedex/internal/utils"
	"github.com/julianstephens/excusedex/internal/watch"
)

type EnableCmd struct {
	At *string `help:"Reminder time (HH:MM). Keeps the current time when omitted."`
}

func (c *EnableCmd) Validate() error {
	if c.At != nil && !utils.ValidateTimeFormat(*c.At) {
		return fmt.Errorf("invalid reminder time %q (expected HH:MM)", *c.At)
	}
	return nil
}

func (c *EnableCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	if c.At != nil {
		prefs.ReminderTime = *c.At
	}

	out := ctx.Stdout()
	prefs.AlarmEnabled = true
	if err := ctx.NotifierAvailable(); err != nil {
		logger.Warn("Notifier unavailable, reminder left disabled", "error", err)
		prefs.AlarmEnabled = false
		fmt.Fprintf(out, "⚠️  Cannot deliver notifications: %v\n", err)
		fmt.Fprintln(out, "   The daily reminder stays off. Start the tray app or set notifier.mode to stdout.")
	}

	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	if prefs.AlarmEnabled {
		fmt.Fprintf(out, "✓ Daily reminder enabled at %s. Keep 'excusedex remind run' running to receive it.\n", prefs.ReminderTime)
	}
	return nil
}

type DisableCmd struct{}

func (c *DisableCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	prefs.AlarmEnabled = false
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	fmt.Fprintln(ctx.Stdout(), "✓ Daily reminder disabled.")
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	out := ctx.Stdout()
	if !prefs.AlarmEnabled {
		fmt.Fprintf(out, "Daily reminder is off (time %s, timezone %s).\n", prefs.ReminderTime, prefs.Timezone)
		return nil
	}
	next, err := reminder.Next(prefs, ctx.Clock())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Daily reminder is on at %s (%s).\n", prefs.ReminderTime, prefs.Timezone)
	fmt.Fprintf(out, "Next reminder: %s\n", next.Format("2006-01-02 15:04 MST"))
	return nil
}

type RunCmd struct {
	Once bool `help:"Send the reminder only if it is due this minute, then exit. For use from crontab."`
}

func (c *RunCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	out := ctx.Stdout()
	if !prefs.AlarmEnabled {
		fmt.Fprintln(out, "Daily reminder is disabled. Enable it with 'excusedex remind enable'.")
		return nil
	}

	if c.Once {
		return c.runOnce(ctx)
	}

	d := &reminder.Daemon{Prefs: ctx.Store, Sender: ctx.ReminderSender()}
	if path := ctx.SQLitePath(); path != "" {
		w, err := watch.New(path)
		if err != nil {
			logger.Warn("Cannot watch database, preference changes need a restart", "error", err)
		} else {
			defer w.Close()
			d.Changes = w.Events()
		}
	}

	fmt.Fprintf(out, "Reminder daemon running, next at %s. Press Ctrl+C to stop.\n", prefs.ReminderTime)
	err = d.Run(ctx.Context())
	if errors.Is(err, reminder.ErrDisabled) {
		fmt.Fprintln(out, "Daily reminder was disabled, stopping.")
		return nil
	}
	return err
}

func (c *RunCmd) runOnce(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	now, err := ctx.Today(prefs)
	if err != nil {
		return err
	}
	hour, minute, err := utils.ParseTimeOfDay(prefs.ReminderTime)
	if err != nil {
		return err
	}
	if now.Hour() != hour || now.Minute() != minute {
		logger.Debug("reminder not due", "now", now.Format(constants.TimeFormat), "at", prefs.ReminderTime)
		return nil
	}
	return send(ctx, ctx.ReminderSender(), reminder.Message)
}

type NotifyCmd struct {
	DryRun bool `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if c.DryRun {
		fmt.Fprintln(ctx.Stdout(), "[DryRun] "+reminder.Message)
		return nil
	}
	if err := send(ctx, ctx.Notifier(), reminder.Message); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stdout(), "✓ Notification sent")
	return nil
}

func send(ctx *cli.Context, sender notifier.Sender, text string) error {
	sendCtx, cancel := context.WithTimeout(ctx.Context(), constants.NotifierTimeout)
	defer cancel()
	if err := sender.Notify(sendCtx, text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
