package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/excusedex/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withConfigDir(t *testing.T, dir string) {
	t.Helper()
	old := userConfigDirFunc
	userConfigDirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userConfigDirFunc = old })
}

func withProcess(t *testing.T, fn func(int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = old })
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	withConfigDir(t, tempDir)

	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != trayDir {
		t.Errorf("expected %s, got %s", trayDir, dir)
	}

	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/excusedex/dir"
	settings := `{"settings": {"lockfile_dir": "` + customDir + `"}}`
	if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settings), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, _, err := findAndValidateTrayProcess(lockfilePath); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("missing lockfile: error = %v, want ErrTrayNotRunning", err)
	}

	invalid := []struct {
		name    string
		content string
		wantErr string
	}{
		{"two parts", "8080|12345", "malformed"},
		{"garbage", "invalid", "malformed"},
		{"empty secret", "8080|12345|", "secret"},
		{"empty port", "|12345|s3cret", "port"},
		{"port out of range", "99999|12345|s3cret", "outside valid range"},
		{"bad pid", "8080|abc|s3cret", "process ID"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(lockfilePath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, _, err := findAndValidateTrayProcess(lockfilePath)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if err := os.WriteFile(lockfilePath, []byte("8080|12345|s3cret\n"), 0644); err != nil {
		t.Fatal(err)
	}

	withProcess(t, func(int) (ps.Process, error) { return nil, nil })
	if _, _, err := findAndValidateTrayProcess(lockfilePath); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("dead process: error = %v, want ErrTrayNotRunning", err)
	}

	withProcess(t, func(pid int) (ps.Process, error) { return &mockProcess{pid: pid, executable: "other-app"}, nil })
	if _, _, err := findAndValidateTrayProcess(lockfilePath); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("reused PID: error = %v, want ErrTrayNotRunning", err)
	}

	withProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "excusedex-tray"}, nil
	})
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != "8080" || secret != "s3cret" {
		t.Errorf("got port %q secret %q", port, secret)
	}
}

func newTrayServer(t *testing.T, received *[]WebhookPayload) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get(constants.NotifierSecretHeader) != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		*received = append(*received, payload)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	parts := strings.Split(server.URL, ":")
	return parts[len(parts)-1]
}

func TestSend(t *testing.T) {
	var received []WebhookPayload
	port := newTrayServer(t, &received)
	n := New()
	ctx := context.Background()

	if err := n.send(ctx, port, "test-secret", WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := n.send(ctx, port, "", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for missing secret")
	}
	if err := n.send(ctx, port, "wrong-secret", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}
	if err := n.send(ctx, port, "test-secret", WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
	if len(received) != 1 {
		t.Errorf("server received %d notifications, want 1", len(received))
	}
}

func TestNotifyEndToEnd(t *testing.T) {
	var received []WebhookPayload
	port := newTrayServer(t, &received)

	configDir := t.TempDir()
	withConfigDir(t, configDir)
	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := port + "|4242|test-secret"
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0644); err != nil {
		t.Fatal(err)
	}
	withProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "excusedex-tray"}, nil
	})

	n := New()
	if err := n.Available(); err != nil {
		t.Fatalf("Available() error = %v", err)
	}
	if err := n.Notify(context.Background(), "Log today's excuse"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if len(received) != 1 || received[0].Text != "Log today's excuse" {
		t.Errorf("received = %+v", received)
	}
	if received[0].DurationMs != constants.NotificationDurationMs {
		t.Errorf("duration = %d, want %d", received[0].DurationMs, constants.NotificationDurationMs)
	}
}

func TestFallback(t *testing.T) {
	var buf bytes.Buffer
	f := Fallback{W: &buf, Now: func() time.Time { return time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC) }}

	if err := f.Notify(context.Background(), "Did you finish everything today?"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "[21:00]") || !strings.Contains(got, "Did you finish everything today?") {
		t.Errorf("Fallback output = %q", got)
	}
}

type stubSender struct {
	err   error
	texts []string
}

func (s *stubSender) Notify(_ context.Context, text string) error {
	s.texts = append(s.texts, text)
	return s.err
}

func TestTrayOrFallback(t *testing.T) {
	tests := []struct {
		name         string
		trayErr      error
		wantErr      bool
		wantFallback bool
	}{
		{"tray delivers", nil, false, false},
		{"tray not running", ErrTrayNotRunning, false, true},
		{"tray not running wrapped", fmt.Errorf("locate: %w", ErrTrayNotRunning), false, true},
		{"tray rejects", errors.New("notification failed with status 401"), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tray := &stubSender{err: tt.trayErr}
			fallback := &stubSender{}
			err := TrayOrFallback{Tray: tray, Fallback: fallback}.Notify(context.Background(), "hello")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Notify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(fallback.texts) == 1; got != tt.wantFallback {
				t.Errorf("fallback used = %v, want %v", got, tt.wantFallback)
			}
		})
	}
}

func TestTrayOrFallbackMissingLockfile(t *testing.T) {
	withConfigDir(t, t.TempDir())

	var buf bytes.Buffer
	fixed := time.Date(2024, 3, 11, 21, 0, 0, 0, time.UTC)
	s := TrayOrFallback{Tray: New(), Fallback: Fallback{W: &buf, Now: func() time.Time { return fixed }}}

	if err := s.Notify(context.Background(), "Log it"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "[21:00] 🔔 Log it\n" {
		t.Errorf("unexpected fallback output %q", got)
	}
}
