package utils

import (
	"testing"
	"time"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"same month", "2024-03-31", 0, "2024-03"},
		{"back from month end", "2024-03-31", -1, "2024-02"},
		{"back across year", "2024-02-15", -5, "2023-09"},
		{"forward across year", "2023-11-30", 3, "2024-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.in, err)
			}
			if got := MonthKey(AddMonths(in, tt.n)); got != tt.want {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2024-02")
	if err != nil {
		t.Fatalf("ParseMonth() error = %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 1 {
		t.Errorf("ParseMonth() = %v", got)
	}
	if DaysInMonth(got) != 29 {
		t.Errorf("DaysInMonth(2024-02) = %d, want 29", DaysInMonth(got))
	}

	for _, bad := range []string{"", "2024-13", "02-2024", "2024/02"} {
		if _, err := ParseMonth(bad); err == nil {
			t.Errorf("ParseMonth(%q) expected error", bad)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	h, m, err := ParseTimeOfDay("21:05")
	if err != nil || h != 21 || m != 5 {
		t.Errorf("ParseTimeOfDay(21:05) = %d, %d, %v", h, m, err)
	}
	if _, _, err := ParseTimeOfDay("9pm"); err == nil {
		t.Error("ParseTimeOfDay(9pm) expected error")
	}
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		wantErr bool
	}{
		{"empty is local", "", false},
		{"Local", "Local", false},
		{"UTC", "UTC", false},
		{"Seoul", "Asia/Seoul", false},
		{"invalid", "Not/AZone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLocation(tt.tz)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation(%q) error = %v, wantErr %v", tt.tz, err, tt.wantErr)
			}
			if ValidateTimezone(tt.tz) == tt.wantErr {
				t.Errorf("ValidateTimezone(%q) mismatch", tt.tz)
			}
		})
	}
}

func TestTodayInTimezone(t *testing.T) {
	today, err := TodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("TodayInTimezone() error = %v", err)
	}
	if _, err := ParseDate(today); err != nil {
		t.Errorf("TodayInTimezone() returned unparsable %q", today)
	}
	if _, err := TodayInTimezone("Bad/Zone"); err == nil {
		t.Error("TodayInTimezone(Bad/Zone) expected error")
	}
}
