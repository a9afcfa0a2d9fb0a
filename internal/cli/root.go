package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/excusedex/internal/backup"
	"github.com/julianstephens/excusedex/internal/config"
	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/models"
	"github.com/julianstephens/excusedex/internal/notifier"
	"github.com/julianstephens/excusedex/internal/storage"
	"github.com/julianstephens/excusedex/internal/storage/sqlite"
	"github.com/julianstephens/excusedex/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Ctx is cancelled on interrupt. Long-running commands stop when it is done.
	Ctx context.Context

	// Out and In default to the process stdout and an interactive prompt.
	Out io.Writer
	In  io.Reader
	// Now defaults to time.Now.
	Now func() time.Time
	// Sender overrides the notifier chosen from Config.
	Sender notifier.Sender
}

func (c *Context) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) Context() context.Context {
	if c.Ctx != nil {
		return c.Ctx
	}
	return context.Background()
}

func (c *Context) Clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Today returns the current time in the user's configured timezone.
func (c *Context) Today(prefs models.Preferences) (time.Time, error) {
	loc, err := utils.LoadLocation(prefs.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", prefs.Timezone, err)
	}
	return c.Clock().In(loc), nil
}

// Notifier returns the sender used for reminders.
func (c *Context) Notifier() notifier.Sender {
	if c.Sender != nil {
		return c.Sender
	}
	if c.Config != nil && c.Config.Notifier.Mode == config.NotifierModeStdout {
		return notifier.Fallback{W: c.Stdout()}
	}
	return notifier.New()
}

// ReminderSender returns the Notifier, falling back to stdout when the
// tray sender finds no running tray.
func (c *Context) ReminderSender() notifier.Sender {
	n := c.Notifier()
	if tray, ok := n.(*notifier.Notifier); ok {
		return notifier.TrayOrFallback{
			Tray:     tray,
			Fallback: notifier.Fallback{W: c.Stdout(), Now: c.Clock},
		}
	}
	return n
}

// NotifierAvailable reports whether reminders can be delivered.
func (c *Context) NotifierAvailable() error {
	switch n := c.Notifier().(type) {
	case *notifier.Notifier:
		return n.Available()
	default:
		return nil
	}
}

// SQLitePath returns the database file path, or "" for non-file stores.
func (c *Context) SQLitePath() string {
	if _, ok := c.Store.(*sqlite.Store); ok {
		return c.Store.GetConfigPath()
	}
	return ""
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path := c.SQLitePath()
	if path == "" {
		return
	}
	mgr := backup.NewManager(path)
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question. With In set it reads a y/N answer from it,
// otherwise it shows an interactive prompt.
func (c *Context) Confirm(prompt string) (bool, error) {
	if c.In == nil {
		var ok bool
		err := huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&ok).
			Run()
		if err != nil {
			return false, err
		}
		return ok, nil
	}

	fmt.Fprintf(c.Stdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ParseMonth parses a YYYY-MM month. An empty string means the month of now.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return utils.StartOfMonth(now), nil
	}
	return utils.ParseMonth(s)
}

// ParseScore parses a candor score between 1 and 5.
func ParseScore(s string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || score < constants.MinScore || score > constants.MaxScore {
		return 0, fmt.Errorf("score must be a number between %d and %d, got %q", constants.MinScore, constants.MaxScore, s)
	}
	return score, nil
}

// ResolveDate turns "", "today", "yesterday" or a YYYY-MM-DD string into a date string.
func ResolveDate(s string, today time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today.Format(constants.DateFormat), nil
	case "yesterday":
		return today.AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}
	d, err := utils.ParseDate(s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return utils.FormatDate(d), nil
}

// FormatExcuse renders a record as a single line.
func FormatExcuse(e models.Excuse) string {
	return fmt.Sprintf("#%d  %s  [%s] %s  %s: %s",
		e.ID, e.Date, models.CategoryLabel(e.Category), ScoreStars(e.Score), e.Task, e.Reason)
}

// ScoreStars renders a candor score as filled and empty stars.
func ScoreStars(score int) string {
	if score < 0 {
		score = 0
	}
	if score > constants.MaxScore {
		score = constants.MaxScore
	}
	return strings.Repeat("★", score) + strings.Repeat("☆", constants.MaxScore-score)
}
