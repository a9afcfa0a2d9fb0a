package models

import (
	"fmt"

	"github.com/julianstephens/excusedex/internal/constants"
)

// MapToPreferences converts a map of key-value pairs to a Preferences struct.
// Keys that are absent keep their default value.
func MapToPreferences(data map[string]string) (Preferences, error) {
	prefs := DefaultPreferences()

	for key, value := range data {
		switch key {
		case constants.PrefFirstRun:
			prefs.FirstRun = value == "true"
		case constants.PrefIsPremium:
			prefs.IsPremium = value == "true"
		case constants.PrefPremiumPlan:
			prefs.PremiumPlan = value
		case constants.PrefSaveCount:
			if _, err := fmt.Sscanf(value, "%d", &prefs.SaveCount); err != nil {
				return Preferences{}, fmt.Errorf("parsing save_count: %w", err)
			}
		case constants.PrefEditCount:
			if _, err := fmt.Sscanf(value, "%d", &prefs.EditCount); err != nil {
				return Preferences{}, fmt.Errorf("parsing edit_count: %w", err)
			}
		case constants.PrefReviewRequested:
			prefs.ReviewRequested = value == "true"
		case constants.PrefAlarmEnabled:
			prefs.AlarmEnabled = value == "true"
		case constants.PrefReminderTime:
			prefs.ReminderTime = value
		case constants.PrefTimezone:
			prefs.Timezone = value
		}
	}

	ApplyDefaultPreferences(&prefs)
	return prefs, nil
}

// PreferencesToMap converts a Preferences struct to a map of key-value pairs.
func PreferencesToMap(prefs Preferences) map[string]string {
	return map[string]string{
		constants.PrefFirstRun:        fmt.Sprintf("%v", prefs.FirstRun),
		constants.PrefIsPremium:       fmt.Sprintf("%v", prefs.IsPremium),
		constants.PrefPremiumPlan:     prefs.PremiumPlan,
		constants.PrefSaveCount:       fmt.Sprintf("%d", prefs.SaveCount),
		constants.PrefEditCount:       fmt.Sprintf("%d", prefs.EditCount),
		constants.PrefReviewRequested: fmt.Sprintf("%v", prefs.ReviewRequested),
		constants.PrefAlarmEnabled:    fmt.Sprintf("%v", prefs.AlarmEnabled),
		constants.PrefReminderTime:    prefs.ReminderTime,
		constants.PrefTimezone:        prefs.Timezone,
	}
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		FirstRun:     constants.DefaultFirstRun,
		ReminderTime: constants.DefaultReminderTime,
		Timezone:     constants.DefaultTimezone,
	}
}

// ApplyDefaultPreferences applies default values to missing string preferences.
func ApplyDefaultPreferences(prefs *Preferences) {
	if prefs.ReminderTime == "" {
		prefs.ReminderTime = constants.DefaultReminderTime
	}
	if prefs.Timezone == "" {
		prefs.Timezone = constants.DefaultTimezone
	}
	if prefs.SaveCount < 0 {
		prefs.SaveCount = 0
	}
}
