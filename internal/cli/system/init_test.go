package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/storage/sqlite"
)

func newCtx(t *testing.T, dbPath string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })
	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Out: out}, out
}

func TestInitCmd_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx, out := newCtx(t, dbPath)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized excusedex storage at") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx, _ := newCtx(t, dbPath)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx, out := newCtx(t, dbPath)

	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := ctx.Store.AddExcuse(models.Excuse{
		Date: "2024-03-11", Task: "Gym", Reason: "Rain", Category: constants.DefaultCategory, Score: 3,
	}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing database") {
		t.Errorf("expected delete message, got %s", out.String())
	}

	n, err := ctx.Store.CountExcuses()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty database after --force, got %d excuses", n)
	}
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx, _ := newCtx(t, dbPath)

	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil {
		t.Fatal("expected error when source equals destination")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.db")

	src := sqlite.NewStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatalf("init source failed: %v", err)
	}
	for _, task := range []string{"Gym", "Read"} {
		if _, err := src.AddExcuse(models.Excuse{
			Date: "2024-03-11", Task: task, Reason: "Tired", Category: constants.DefaultCategory, Score: 2,
		}); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	prefs, _ := src.GetPreferences()
	prefs.Timezone = "Asia/Seoul"
	if err := src.SavePreferences(prefs); err != nil {
		t.Fatalf("save prefs failed: %v", err)
	}
	src.Close()

	ctx, out := newCtx(t, filepath.Join(dir, "dst.db"))
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}
	if !strings.Contains(out.String(), "Copied 2 excuses") {
		t.Errorf("unexpected output: %s", out.String())
	}

	got, err := ctx.Store.GetPreferences()
	if err != nil {
		t.Fatalf("get prefs failed: %v", err)
	}
	if got.Timezone != "Asia/Seoul" {
		t.Errorf("expected copied timezone, got %q", got.Timezone)
	}
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
