package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/notifier"
	"github.com/julianstephens/excusedex/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:  store,
		Out:    out,
		Now:    func() time.Time { return time.Date(2024, 3, 11, 21, 0, 0, 0, time.UTC) },
		Sender: notifier.Fallback{W: &bytes.Buffer{}},
	}

	cleanup := func() {
		store.Close()
	}

	return ctx, out, cleanup
}
