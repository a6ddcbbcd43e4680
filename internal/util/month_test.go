package util

import (
	"testing"
	"time"
)

func TestAddMonths(t *testing.T) {
	start := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		months int
		want   time.Time
	}{
		{0, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		{2, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)},
		{3, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},    // year wrap
		{336, time.Date(2054, 10, 1, 0, 0, 0, 0, time.UTC)}, // 28 years
	}

	for _, tt := range tests {
		got := AddMonths(start, tt.months)
		if !got.Equal(tt.want) {
			t.Errorf("AddMonths(%s, %d) = %s, want %s", start.Format("2006-01-02"), tt.months, got, tt.want)
		}
	}
}

func TestAddMonths_EndOfMonthStart(t *testing.T) {
	// Jan 31 + 1 month must land in February, not overflow into March
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	got := AddMonths(start, 1)
	if got.Month() != time.February || got.Day() != 1 {
		t.Errorf("AddMonths(Jan 31, 1) = %s, want Feb 1", got)
	}
}

func TestFormatMonthYear(t *testing.T) {
	got := FormatMonthYear(time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC))
	if got != "Mar 2031" {
		t.Errorf("FormatMonthYear() = %q, want %q", got, "Mar 2031")
	}
}

func TestFirstOfMonth(t *testing.T) {
	got := FirstOfMonth(2027, 6)
	if got == nil || !got.Equal(time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("FirstOfMonth(2027, 6) = %v, want 2027-06-01", got)
	}

	if FirstOfMonth(2027, 0) != nil {
		t.Error("Expected nil for unset month")
	}
	if FirstOfMonth(0, 6) != nil {
		t.Error("Expected nil for unset year")
	}
}

func TestFormatYearsMonths(t *testing.T) {
	tests := []struct {
		years  int
		months int
		want   string
	}{
		{0, 0, "0 years"},
		{1, 0, "1 year"},
		{10, 0, "10 years"},
		{1, 1, "1 year and 1 month"},
		{21, 7, "21 years and 7 months"},
		{0, 5, "0 years and 5 months"},
	}

	for _, tt := range tests {
		if got := FormatYearsMonths(tt.years, tt.months); got != tt.want {
			t.Errorf("FormatYearsMonths(%d, %d) = %q, want %q", tt.years, tt.months, got, tt.want)
		}
	}
}
