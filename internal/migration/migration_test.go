package migration

import (
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/excusedex/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mapFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}), DriverSQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := NewRunner(setupTestDB(t), mapFS(map[string]string{
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"README.md":       "ignored",
	}), DriverSQLite)

	got, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	want := []struct {
		version int
		name    string
	}{{1, "init"}, {2, "update"}, {3, "another"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Version != w.version || got[i].Name != w.name {
			t.Errorf("migration %d = (%d, %q), want (%d, %q)", i, got[i].Version, got[i].Name, w.version, w.name)
		}
	}
}

func TestReadMigrationFilesInvalid(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing underscore", map[string]string{"001init.sql": "SELECT 1;"}, "invalid migration filename"},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}, "version must be at least 1"},
		{"non-numeric version", map[string]string{"abc_init.sql": "SELECT 1;"}, "invalid version number"},
		{
			"duplicate version",
			map[string]string{"001_init.sql": "SELECT 1;", "001_other.sql": "SELECT 1;"},
			"duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), mapFS(tt.files), DriverSQLite)
			_, err := runner.ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ReadMigrationFiles() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := setupTestDB(t)
	files := mapFS(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
	})
	runner := NewRunner(db, files, DriverSQLite)

	count, err := runner.ApplyMigrations(nil)
	if err != nil || count != 1 {
		t.Fatalf("first ApplyMigrations = %d, %v; want 1, nil", count, err)
	}

	files["002_posts.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE posts (id INTEGER PRIMARY KEY);")}
	var logged []string
	count, err = runner.ApplyMigrations(func(s string) { logged = append(logged, s) })
	if err != nil || count != 1 {
		t.Fatalf("second ApplyMigrations = %d, %v; want 1, nil", count, err)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil || count != 0 {
		t.Errorf("no-op ApplyMigrations = %d, %v; want 0, nil", count, err)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_init.sql": `
			CREATE TABLE users (id INTEGER PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}), DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='users'").Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 0 {
		t.Error("table should not exist after failed migration")
	}
}

func TestRejectsNewerDatabase(t *testing.T) {
	runner := NewRunner(setupTestDB(t), mapFS(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	}), DriverSQLite)

	if err := runner.SetVersion(10); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	if err := runner.ValidateVersion(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ValidateVersion() error = %v, want ErrSchemaTooNew", err)
	}
	if _, err := runner.ApplyMigrations(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ApplyMigrations() error = %v, want ErrSchemaTooNew", err)
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	db := setupTestDB(t)
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("fs.Sub failed: %v", err)
	}
	runner := NewRunner(db, sub, DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}
	if current, _ := runner.GetCurrentVersion(); current != latest {
		t.Errorf("current version = %d, want %d", current, latest)
	}

	if _, err := db.Exec(`INSERT INTO excuses (date, task, reason, category, score) VALUES ('2024-03-04', 't', 'r', 'other', 3)`); err != nil {
		t.Errorf("valid insert failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO excuses (date, task, reason, category, score) VALUES ('2024-03-04', 't', 'r', 'other', 9)`); err == nil {
		t.Error("out-of-range score should be rejected")
	}
}
