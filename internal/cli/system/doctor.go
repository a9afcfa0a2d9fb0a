package system

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/excusedex/internal/backup"
	"github.com/julianstephens/excusedex/internal/cli"
	"github.com/julianstephens/excusedex/internal/storage"
	"github.com/julianstephens/excusedex/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database cannot be loaded.
	needsDB bool
	// warnOnly failures do not fail the command.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Preferences", needsDB: true, run: checkPreferences},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Notifier", warnOnly: true, run: checkNotifier},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClock(time.Now()) }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		report(out, "Database reachable", err, false)
		hasError = true
	} else {
		report(out, "Database reachable", nil, false)
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		report(out, c.name, err, c.warnOnly)
		if err != nil && !c.warnOnly {
			hasError = true
		}
	}

	fmt.Fprintln(out)
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

func report(out io.Writer, name string, err error, warnOnly bool) {
	switch {
	case err == nil:
		fmt.Fprintf(out, "✓ %s: OK\n", name)
	case warnOnly:
		fmt.Fprintf(out, "⚠ %s: WARNING\n", name)
		fmt.Fprintf(out, "   %v\n", err)
	default:
		fmt.Fprintf(out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(out, "   Error: %v\n", err)
	}
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.CountExcuses(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("%d pending migration(s), run 'excusedex migrate'", latest-current)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllExcuses()
	if err != nil {
		return fmt.Errorf("failed to list excuses: %w", err)
	}
	var bad int
	var first error
	for _, e := range all {
		if err := e.Validate(); err != nil {
			bad++
			if first == nil {
				first = fmt.Errorf("excuse #%d: %w", e.ID, err)
			}
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d invalid excuse(s), first: %w", bad, first)
	}
	return nil
}

func checkPreferences(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	if !utils.ValidateTimezone(prefs.Timezone) {
		return fmt.Errorf("invalid timezone %q", prefs.Timezone)
	}
	if !utils.ValidateTimeFormat(prefs.ReminderTime) {
		return fmt.Errorf("invalid reminder time %q", prefs.ReminderTime)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path := ctx.SQLitePath()
	if path == "" {
		return fmt.Errorf("snapshots are not available for this backend, use 'excusedex export'")
	}
	backups, err := backup.NewManager(path).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'excusedex backup create'")
	}
	return nil
}

func checkNotifier(ctx *cli.Context) error {
	if err := ctx.NotifierAvailable(); err != nil {
		return fmt.Errorf("reminders cannot be delivered: %w", err)
	}
	return nil
}

func checkClock(now time.Time) error {
	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
