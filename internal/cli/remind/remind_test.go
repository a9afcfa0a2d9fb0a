package remind

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/config"
	"github.com/julianstephens/excusedex/internal/reminder"
	"github.com/julianstephens/excusedex/internal/storage/sqlite"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingSender) Notify(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.texts)
}

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, *recordingSender) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })

	prefs, err := store.GetPreferences()
	require.NoError(t, err)
	prefs.Timezone = "UTC"
	require.NoError(t, store.SavePreferences(prefs))

	out := &bytes.Buffer{}
	sender := &recordingSender{}
	return &cli.Context{
		Store:  store,
		Out:    out,
		Sender: sender,
		Now:    func() time.Time { return time.Date(2024, 3, 11, 21, 0, 30, 0, time.UTC) },
	}, out, sender
}

func TestEnableDisable(t *testing.T) {
	ctx, out, _ := setupTestDB(t)

	at := "22:15"
	cmd := &EnableCmd{At: &at}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(ctx))
	assert.Contains(t, out.String(), "enabled at 22:15")

	prefs, err := ctx.Store.GetPreferences()
	require.NoError(t, err)
	assert.True(t, prefs.AlarmEnabled)
	assert.Equal(t, "22:15", prefs.ReminderTime)

	require.NoError(t, (&DisableCmd{}).Run(ctx))
	prefs, err = ctx.Store.GetPreferences()
	require.NoError(t, err)
	assert.False(t, prefs.AlarmEnabled)
}

func TestEnableWithoutTrayStaysDisabled(t *testing.T) {
	ctx, out, _ := setupTestDB(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx.Sender = nil
	ctx.Config = &config.Config{Notifier: config.NotifierConfig{Mode: config.NotifierModeTray}}

	require.NoError(t, (&EnableCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Cannot deliver notifications")

	prefs, err := ctx.Store.GetPreferences()
	require.NoError(t, err)
	assert.False(t, prefs.AlarmEnabled)
}

func TestEnableValidate(t *testing.T) {
	bad := "25:99"
	assert.Error(t, (&EnableCmd{At: &bad}).Validate())
}

func TestStatus(t *testing.T) {
	ctx, out, _ := setupTestDB(t)

	require.NoError(t, (&StatusCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "off")

	require.NoError(t, (&EnableCmd{}).Run(ctx))
	out.Reset()
	require.NoError(t, (&StatusCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Next reminder: 2024-03-12 21:00")
}

func TestRunOnce(t *testing.T) {
	ctx, _, sender := setupTestDB(t)
	require.NoError(t, (&EnableCmd{}).Run(ctx))

	// 21:00 matches the default reminder time.
	require.NoError(t, (&RunCmd{Once: true}).Run(ctx))
	assert.Equal(t, 1, sender.count())

	ctx.Now = func() time.Time { return time.Date(2024, 3, 11, 20, 59, 0, 0, time.UTC) }
	require.NoError(t, (&RunCmd{Once: true}).Run(ctx))
	assert.Equal(t, 1, sender.count())
}

func TestRunOnceWithoutTrayPrintsReminder(t *testing.T) {
	ctx, out, _ := setupTestDB(t)
	require.NoError(t, (&EnableCmd{}).Run(ctx))

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	ctx.Sender = nil
	ctx.Config = &config.Config{Notifier: config.NotifierConfig{Mode: config.NotifierModeTray}}
	out.Reset()

	require.NoError(t, (&RunCmd{Once: true}).Run(ctx))
	assert.Equal(t, "[21:00] 🔔 "+reminder.Message+"\n", out.String())
}

func TestRunDisabled(t *testing.T) {
	ctx, out, sender := setupTestDB(t)

	require.NoError(t, (&RunCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "disabled")
	assert.Equal(t, 0, sender.count())
}

func TestRunDaemonStopsOnCancel(t *testing.T) {
	ctx, _, _ := setupTestDB(t)
	require.NoError(t, (&EnableCmd{}).Run(ctx))

	runCtx, cancel := context.WithCancel(context.Background())
	ctx.Ctx = runCtx
	done := make(chan error, 1)
	go func() { done <- (&RunCmd{}).Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

func TestNotify(t *testing.T) {
	ctx, out, sender := setupTestDB(t)

	require.NoError(t, (&NotifyCmd{DryRun: true}).Run(ctx))
	assert.True(t, strings.Contains(out.String(), "[DryRun] "+reminder.Message))
	assert.Equal(t, 0, sender.count())

	require.NoError(t, (&NotifyCmd{}).Run(ctx))
	assert.Equal(t, 1, sender.count())
}
