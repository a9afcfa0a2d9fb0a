package constants

const (
	// Preference keys
	PrefFirstRun        = "first_run"
	PrefIsPremium       = "is_premium"
	PrefPremiumPlan     = "premium_plan"
	PrefSaveCount       = "save_count"
	PrefEditCount       = "edit_count"
	PrefReviewRequested = "review_requested"
	PrefAlarmEnabled    = "alarm_enabled"
	PrefReminderTime    = "reminder_time"
	PrefTimezone        = "timezone"

	// Default preference values
	DefaultFirstRun     = true
	DefaultReminderTime = "21:00"
	DefaultTimezone     = "Local" // Use system local timezone by default

	// Gating constants
	AdEverySaves          = 3
	AdListFirstSlot       = 2
	AdListSlotInterval    = 5
	ReviewPromptThreshold = 5
)
