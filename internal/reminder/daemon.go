package reminder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/notifier"
)

// PreferenceSource loads the current preferences.
type PreferenceSource interface {
	GetPreferences() (models.Preferences, error)
}

// Daemon keeps the reminder scheduled and follows preference changes made
// by other processes.
type Daemon struct {
	Prefs  PreferenceSource
	Sender notifier.Sender
	// Changes signals that the database may have changed. Optional.
	Changes <-chan struct{}
}

// ErrDisabled is returned by Run when the reminder is turned off.
var ErrDisabled = fmt.Errorf("daily reminder is disabled")

// Run schedules the reminder and blocks until ctx is cancelled or the
// reminder gets disabled.
func (d *Daemon) Run(ctx context.Context) error {
	prefs, err := d.Prefs.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if !prefs.AlarmEnabled {
		return ErrDisabled
	}

	sched, err := NewScheduler(prefs, d.Sender)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Start(ctx)
	})
	if d.Changes != nil {
		g.Go(func() error {
			return d.follow(ctx, sched)
		})
	}
	return g.Wait()
}

func (d *Daemon) follow(ctx context.Context, sched *Scheduler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-d.Changes:
			if !ok {
				return nil
			}
			prefs, err := d.Prefs.GetPreferences()
			if err != nil {
				logger.Warn("failed to reload preferences", "error", err)
				continue
			}
			if !prefs.AlarmEnabled {
				logger.Info("reminder disabled, stopping daemon")
				return ErrDisabled
			}
			if err := sched.Reschedule(prefs); err != nil {
				logger.Warn("failed to reschedule reminder", "error", err)
			}
		}
	}
}
