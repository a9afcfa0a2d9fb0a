package reminder

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/notifier"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (r *recordingSender) Notify(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return r.err
}

func (r *recordingSender) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

type fakePrefs struct {
	mu    sync.Mutex
	prefs models.Preferences
}

func (f *fakePrefs) GetPreferences() (models.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefs, nil
}

func (f *fakePrefs) set(p models.Preferences) {
	f.mu.Lock()
	f.prefs = p
	f.mu.Unlock()
}

func TestSpec(t *testing.T) {
	tests := []struct {
		name    string
		time    string
		want    string
		wantErr bool
	}{
		{"default evening", "21:00", "0 21 * * *", false},
		{"minutes", "07:45", "45 7 * * *", false},
		{"midnight", "00:00", "0 0 * * *", false},
		{"empty uses default", "", "0 21 * * *", false},
		{"garbage", "9pm", "", true},
		{"out of range", "25:00", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Spec(models.Preferences{ReminderTime: tt.time})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext(t *testing.T) {
	prefs := models.Preferences{ReminderTime: "21:30", Timezone: "Asia/Seoul"}
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	before := time.Date(2024, 3, 10, 20, 0, 0, 0, loc)
	next, err := Next(prefs, before)
	require.NoError(t, err)
	assert.True(t, next.Equal(time.Date(2024, 3, 10, 21, 30, 0, 0, loc)), "got %v", next)

	after := time.Date(2024, 3, 10, 22, 0, 0, 0, loc)
	next, err = Next(prefs, after)
	require.NoError(t, err)
	assert.True(t, next.Equal(time.Date(2024, 3, 11, 21, 30, 0, 0, loc)), "got %v", next)

	// The same instant expressed in UTC still lands on Seoul wall time.
	next, err = Next(prefs, before.UTC())
	require.NoError(t, err)
	assert.Equal(t, 21, next.In(loc).Hour())
	assert.Equal(t, 30, next.In(loc).Minute())
}

func TestNextInvalidTimezone(t *testing.T) {
	_, err := Next(models.Preferences{ReminderTime: "21:00", Timezone: "Mars/Olympus"}, time.Now())
	require.Error(t, err)
}

func TestSchedulerStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &recordingSender{}
	s, err := NewScheduler(models.Preferences{ReminderTime: "21:00", Timezone: "UTC"}, sender)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool { return !s.NextRun().IsZero() }, time.Second, 10*time.Millisecond)
	next := s.NextRun().UTC()
	assert.Equal(t, 21, next.Hour())
	assert.Equal(t, 0, next.Minute())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	// Second stop is a no-op.
	s.Stop()
}

func TestSchedulerReschedule(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := NewScheduler(models.Preferences{ReminderTime: "21:00", Timezone: "UTC"}, &recordingSender{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	require.Eventually(t, func() bool { return !s.NextRun().IsZero() }, time.Second, 10*time.Millisecond)

	require.NoError(t, s.Reschedule(models.Preferences{ReminderTime: "06:15", Timezone: "UTC"}))
	require.Eventually(t, func() bool {
		next := s.NextRun().UTC()
		return next.Hour() == 6 && next.Minute() == 15
	}, time.Second, 10*time.Millisecond)

	require.Error(t, s.Reschedule(models.Preferences{ReminderTime: "bad"}))

	cancel()
	require.NoError(t, <-done)
}

func TestSchedulerFire(t *testing.T) {
	sender := &recordingSender{}
	s, err := NewScheduler(models.Preferences{ReminderTime: "21:00"}, sender)
	require.NoError(t, err)

	require.NoError(t, s.Fire(context.Background()))
	assert.Equal(t, []string{Message}, sender.sent())

	sender.err = errors.New("tray gone")
	require.Error(t, s.Fire(context.Background()))
}

func TestSchedulerFireWithoutTrayLockfile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	sender := notifier.TrayOrFallback{Tray: notifier.New(), Fallback: notifier.Fallback{W: &buf}}
	s, err := NewScheduler(models.Preferences{ReminderTime: "21:00"}, sender)
	require.NoError(t, err)

	require.NoError(t, s.Fire(context.Background()))
	assert.Contains(t, buf.String(), Message)
}

func TestDaemonDisabled(t *testing.T) {
	d := &Daemon{
		Prefs:  &fakePrefs{prefs: models.Preferences{AlarmEnabled: false, ReminderTime: "21:00"}},
		Sender: &recordingSender{},
	}
	err := d.Run(context.Background())
	require.ErrorIs(t, err, ErrDisabled)
}

func TestDaemonStopsWhenDisabledElsewhere(t *testing.T) {
	defer goleak.VerifyNone(t)

	prefs := &fakePrefs{prefs: models.Preferences{AlarmEnabled: true, ReminderTime: "21:00", Timezone: "UTC"}}
	changes := make(chan struct{}, 1)
	d := &Daemon{Prefs: prefs, Sender: &recordingSender{}, Changes: changes}

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	prefs.set(models.Preferences{AlarmEnabled: false, ReminderTime: "21:00", Timezone: "UTC"})
	changes <- struct{}{}

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrDisabled)
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

func TestDaemonCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	prefs := &fakePrefs{prefs: models.Preferences{AlarmEnabled: true, ReminderTime: "21:00", Timezone: "UTC"}}
	d := &Daemon{Prefs: prefs, Sender: &recordingSender{}, Changes: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
}
