// Package reminder schedules the nightly "log your excuse" notification.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/notifier"
	"github.com/julianstephens/excusedex/internal/utils"
)

// Message is the text of the daily reminder.
const Message = "Did you finish everything today? Log today's excuse before bed!"

// Spec returns the daily cron expression for the configured reminder time.
func Spec(prefs models.Preferences) (string, error) {
	reminderTime := prefs.ReminderTime
	if reminderTime == "" {
		reminderTime = constants.DefaultReminderTime
	}
	hour, minute, err := utils.ParseTimeOfDay(reminderTime)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// Next returns the next time the reminder fires after now, in the configured timezone.
func Next(prefs models.Preferences, now time.Time) (time.Time, error) {
	spec, err := Spec(prefs)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := utils.LoadLocation(prefs.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", prefs.Timezone, err)
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return sched.Next(now.In(loc)), nil
}

// Scheduler runs the reminder job on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	sender notifier.Sender
	spec   string

	mu      sync.Mutex
	entry   cron.EntryID
	running bool
	ctx     context.Context
}

// NewScheduler builds a scheduler for the reminder time and timezone in prefs.
func NewScheduler(prefs models.Preferences, sender notifier.Sender) (*Scheduler, error) {
	spec, err := Spec(prefs)
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadLocation(prefs.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", prefs.Timezone, err)
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		sender: sender,
		spec:   spec,
		ctx:    context.Background(),
	}, nil
}

// Start registers the daily job and blocks until ctx is cancelled, then
// stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	id, err := s.cron.AddFunc(s.spec, s.fire)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("invalid reminder schedule %q: %w", s.spec, err)
	}
	s.entry = id
	s.ctx = ctx
	s.running = true
	s.cron.Start()
	s.mu.Unlock()

	logger.Info("reminder scheduler started", "spec", s.spec, "next", s.NextRun())

	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop halts the scheduler and waits for any running job. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	logger.Debug("reminder scheduler stopped")
}

// Reschedule replaces the job with one built from prefs.
func (s *Scheduler) Reschedule(prefs models.Preferences) error {
	spec, err := Spec(prefs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if spec == s.spec {
		return nil
	}
	if s.running {
		id, err := s.cron.AddFunc(spec, s.fire)
		if err != nil {
			return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
		}
		s.cron.Remove(s.entry)
		s.entry = id
	}
	s.spec = spec
	logger.Info("reminder rescheduled", "spec", spec)
	return nil
}

// NextRun returns the next scheduled fire time, or the zero time when not running.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	id := s.entry
	s.mu.Unlock()
	return s.cron.Entry(id).Next
}

// Fire sends the reminder immediately.
func (s *Scheduler) Fire(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.NotifierTimeout)
	defer cancel()
	return s.sender.Notify(ctx, Message)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if err := s.Fire(ctx); err != nil {
		logger.Warn("failed to send reminder", "error", err)
	}
}
