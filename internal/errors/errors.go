package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/excusedex/internal/backup"
	"github.com/julianstephens/excusedex/internal/keyring"
	"github.com/julianstephens/excusedex/internal/logger"
	"github.com/julianstephens/excusedex/internal/migration"
	"github.com/julianstephens/excusedex/internal/notifier"
	"github.com/julianstephens/excusedex/internal/storage"
	"github.com/julianstephens/excusedex/internal/storage/postgres"
)

// userMessage maps a sentinel to the line shown in place of the raw error
// chain, plus an optional hint. An empty message keeps err.Error().
type userMessage struct {
	target  error
	message string
	hint    string
}

var userMessages = []userMessage{
	{
		target:  backup.ErrMalformedBackup,
		message: "import failed: malformed backup file",
		hint:    "The file must be a JSON array written by 'excusedex export'.",
	},
	{
		target: storage.ErrNotFound,
		hint:   "Run 'excusedex list --all' to see excuse ids.",
	},
	{
		target: migration.ErrSchemaTooNew,
		hint:   "This database was written by a newer excusedex. Upgrade before using it.",
	},
	{
		target: keyring.ErrNotFound,
		hint:   "Store one with 'excusedex keyring set <connection-string>'.",
	},
	{
		target: postgres.ErrEmbeddedCredentials,
		hint:   "Store the full connection string with 'excusedex keyring set' or in EXCUSEDEX_DB_CONNECTION.",
	},
	{
		target: notifier.ErrTrayNotRunning,
		hint:   "Start excusedex-tray, or set notifier.mode to stdout in the config file.",
	},
}

// Format formats an error message with a consistent "Error: " prefix.
// Known failures get a fixed message and a hint line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	for _, um := range userMessages {
		if !errors.Is(err, um.target) {
			continue
		}
		msg := um.message
		if msg == "" {
			msg = err.Error()
		}
		if um.hint == "" {
			return "Error: " + msg
		}
		return "Error: " + msg + "\n" + um.hint
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs the full error chain and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
