package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/excusedex/internal/constants"
)

// Excuse is one logged entry: a task that did not get done and the reason given for it.
type Excuse struct {
	ID       int64              `json:"id"`
	Date     string             `json:"date"` // YYYY-MM-DD format
	Task     string             `json:"task"`
	Reason   string             `json:"reason"`
	Category constants.Category `json:"category"`
	Score    int                `json:"score"` // candor score, 1-5
}

// Normalize returns a copy with surrounding whitespace trimmed from the free-text fields.
func (e Excuse) Normalize() Excuse {
	e.Task = strings.TrimSpace(e.Task)
	e.Reason = strings.TrimSpace(e.Reason)
	return e
}

// IsEntryValid reports whether the excuse has enough content to be saved.
func (e Excuse) IsEntryValid() bool {
	return strings.TrimSpace(e.Task) != "" && strings.TrimSpace(e.Reason) != ""
}

// Validate checks that the excuse can be persisted.
func (e Excuse) Validate() error {
	if strings.TrimSpace(e.Task) == "" {
		return errors.New("task cannot be empty")
	}
	if strings.TrimSpace(e.Reason) == "" {
		return errors.New("reason cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, e.Date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", e.Date)
	}
	if e.Score < constants.MinScore || e.Score > constants.MaxScore {
		return fmt.Errorf("score must be between %d and %d, got %d", constants.MinScore, constants.MaxScore, e.Score)
	}
	if !IsValidCategory(e.Category) {
		return fmt.Errorf("invalid category: %q", e.Category)
	}
	return nil
}

// Day parses the excuse date.
func (e Excuse) Day() (time.Time, error) {
	return time.Parse(constants.DateFormat, e.Date)
}

// IsValidCategory reports whether c is one of the fixed categories.
func IsValidCategory(c constants.Category) bool {
	_, ok := constants.CategoryLabels[c]
	return ok
}

// ParseCategory accepts a category key or display label, case-insensitively.
// An empty string yields the default category.
func ParseCategory(s string) (constants.Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return constants.DefaultCategory, nil
	}
	for _, c := range constants.Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, constants.CategoryLabels[c]) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category: %s", s)
}

// CategoryLabel returns the display name for a category, falling back to the raw value.
func CategoryLabel(c constants.Category) string {
	if label, ok := constants.CategoryLabels[c]; ok {
		return label
	}
	return string(c)
}
