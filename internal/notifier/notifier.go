package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/excusedex/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no live tray process can be found.
var ErrTrayNotRunning = errors.New("excusedex-tray is not running")

// Sender delivers a short text notification.
type Sender interface {
	Notify(ctx context.Context, text string) error
}

// Notifier posts notifications to the desktop tray app's local webhook.
type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: constants.NotifierTimeout}}
}

func (n *Notifier) Notify(ctx context.Context, text string) error {
	port, secret, err := n.locate()
	if err != nil {
		return err
	}
	return n.send(ctx, port, secret, WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	})
}

// Available reports whether a tray process is running and reachable via its lockfile.
func (n *Notifier) Available() error {
	_, _, err := n.locate()
	return err
}

func (n *Notifier) locate() (string, string, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
}

// GetTrayAppConfigDir returns the configuration directory used by the tray
// application, honoring a custom lockfile_dir in its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayConfigDir, nil
}

// findAndValidateTrayProcess parses a "port|pid|secret" lockfile and checks
// that pid is a live tray process.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return "", "", fmt.Errorf("%w: process with PID %d is %s, not %s", ErrTrayNotRunning, pid, process.Executable(), constants.TrayExecutablePrefix)
	}

	return port, secret, nil
}

func (n *Notifier) send(ctx context.Context, port, secret string, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.NotifierSecretHeader, secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}

// Fallback prints notifications to a writer, for when no tray is running.
type Fallback struct {
	W   io.Writer
	Now func() time.Time
}

func (f Fallback) Notify(_ context.Context, text string) error {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	_, err := fmt.Fprintf(f.W, "[%s] 🔔 %s\n", now().Format(constants.TimeFormat), text)
	return err
}

// TrayOrFallback sends through Tray and, when no tray process is running,
// delivers through Fallback instead. Other tray errors are returned as-is.
type TrayOrFallback struct {
	Tray     Sender
	Fallback Sender
}

func (s TrayOrFallback) Notify(ctx context.Context, text string) error {
	err := s.Tray.Notify(ctx, text)
	if errors.Is(err, ErrTrayNotRunning) {
		return s.Fallback.Notify(ctx, text)
	}
	return err
}
