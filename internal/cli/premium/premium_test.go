package premium

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/membership"
	"github.com/julianstephens/excusedex/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Out: out}, out
}

func TestSubscribeChangeCancel(t *testing.T) {
	ctx, out := setupTestDB(t)

	require.NoError(t, (&SubscribeCmd{Plan: "1_month"}).Run(ctx))
	assert.Contains(t, out.String(), "Welcome to premium")

	prefs, err := ctx.Store.GetPreferences()
	require.NoError(t, err)
	assert.True(t, prefs.IsPremium)
	assert.Equal(t, "1_month", prefs.PremiumPlan)

	out.Reset()
	require.NoError(t, (&SubscribeCmd{Plan: "1_year"}).Run(ctx))
	assert.Contains(t, out.String(), "Plan changed to Best Value")

	out.Reset()
	require.NoError(t, (&StatusCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "23,900 KRW")

	out.Reset()
	require.NoError(t, (&CancelCmd{}).Run(ctx))
	prefs, err = ctx.Store.GetPreferences()
	require.NoError(t, err)
	assert.False(t, prefs.IsPremium)
	assert.Empty(t, prefs.PremiumPlan)

	out.Reset()
	require.NoError(t, (&CancelCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No active subscription")
}

func TestSubscribeUnknownPlan(t *testing.T) {
	ctx, _ := setupTestDB(t)

	err := (&SubscribeCmd{Plan: "lifetime"}).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, membership.ErrUnknownPlan))

	prefs, err := ctx.Store.GetPreferences()
	require.NoError(t, err)
	assert.False(t, prefs.IsPremium)
}

func TestPlansCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	require.NoError(t, (&PlansCmd{}).Run(ctx))
	for _, p := range membership.Plans() {
		assert.True(t, strings.Contains(out.String(), p.ID), "missing plan %s", p.ID)
	}
}
