package models

// Preferences holds the key/value flags kept alongside the excuse table.
type Preferences struct {
	FirstRun        bool   `json:"first_run"`        // onboarding not yet dismissed
	IsPremium       bool   `json:"is_premium"`       // mock subscription active
	PremiumPlan     string `json:"premium_plan"`     // plan ID of the active subscription
	SaveCount       int    `json:"save_count"`       // saves since the last ad, cycles 0..2
	EditCount       int    `json:"edit_count"`       // number of edits ever made
	ReviewRequested bool   `json:"review_requested"` // review prompt already shown
	AlarmEnabled    bool   `json:"alarm_enabled"`    // daily reminder enabled
	ReminderTime    string `json:"reminder_time"`    // HH:MM
	Timezone        string `json:"timezone"`         // IANA timezone name or "Local"
}
