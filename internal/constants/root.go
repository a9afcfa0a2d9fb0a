package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "excusedex"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/excusedex/excusedex.db"
	DefaultConfigFile  = "~/.config/excusedex/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "excusedex-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "excusedex-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.excusedex"
	NotifierSecretHeader   = "X-Excusedex-Secret"
	TrayExecutablePrefix   = "excusedex-tray"
	NotifierTimeout        = 5 * time.Second

	// Watch constants
	WatchDebounce = 100 * time.Millisecond
)

// Session States
const (
	StateRecord SessionState = iota
	StateCalendar
	StateStats
	StateAchievements
	StateSettings
	StateOnboarding
	StateAddExcuse
	StateConfirmDelete
	StateConfirmClear
)

// TabTitles are the labels of the main TUI views, indexed by SessionState.
var TabTitles = []string{"Record", "Calendar", "Stats", "Achievements", "Settings"}

// NumMainTabs is the number of tab-reachable states.
const NumMainTabs = SessionState(5)
