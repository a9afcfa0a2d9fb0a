package models

import (
	"strings"
	"testing"

	"github.com/julianstephens/excusedex/internal/constants"
)

func validExcuse() Excuse {
	return Excuse{
		Date:     "2024-03-04",
		Task:     "Go to the gym",
		Reason:   "It was raining",
		Category: constants.CategoryHealth,
		Score:    3,
	}
}

func TestExcuseValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Excuse)
		wantErr string
	}{
		{name: "valid", mutate: func(e *Excuse) {}},
		{name: "blank task", mutate: func(e *Excuse) { e.Task = "  " }, wantErr: "task"},
		{name: "blank reason", mutate: func(e *Excuse) { e.Reason = "" }, wantErr: "reason"},
		{name: "bad date", mutate: func(e *Excuse) { e.Date = "2024/03/04" }, wantErr: "invalid date"},
		{name: "score too low", mutate: func(e *Excuse) { e.Score = 0 }, wantErr: "score"},
		{name: "score too high", mutate: func(e *Excuse) { e.Score = 6 }, wantErr: "score"},
		{name: "unknown category", mutate: func(e *Excuse) { e.Category = "work" }, wantErr: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExcuse()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsEntryValid(t *testing.T) {
	e := validExcuse()
	if !e.IsEntryValid() {
		t.Error("IsEntryValid() = false for complete entry")
	}
	e.Reason = "\t"
	if e.IsEntryValid() {
		t.Error("IsEntryValid() = true with blank reason")
	}
}

func TestNormalize(t *testing.T) {
	e := validExcuse()
	e.Task = "  Go to the gym\n"
	e.Reason = "\tIt was raining "

	got := e.Normalize()
	if got.Task != "Go to the gym" || got.Reason != "It was raining" {
		t.Errorf("Normalize() = %+v", got)
	}
	if e.Task != "  Go to the gym\n" {
		t.Error("Normalize() modified the receiver")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    constants.Category
		wantErr bool
	}{
		{in: "", want: constants.CategoryOther},
		{in: "health", want: constants.CategoryHealth},
		{in: "DAILY", want: constants.CategoryDaily},
		{in: "Self-Improvement & Hobby", want: constants.CategoryGrowth},
		{in: " other ", want: constants.CategoryOther},
		{in: "work", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel(constants.CategoryHealth); got != "Health & Life" {
		t.Errorf("CategoryLabel(health) = %q", got)
	}
	if got := CategoryLabel("legacy"); got != "legacy" {
		t.Errorf("CategoryLabel(legacy) = %q, want raw value", got)
	}
}

func TestAchievementDisplay(t *testing.T) {
	a := Achievement{ID: "rain", Title: "Weather Forecaster", Description: "d", Hidden: true}
	if a.DisplayTitle() != "???" {
		t.Errorf("locked hidden title = %q", a.DisplayTitle())
	}
	a.Unlocked = true
	if a.DisplayTitle() != "Weather Forecaster" || a.DisplayDescription() != "d" {
		t.Error("unlocked hidden achievement should reveal its text")
	}
}
