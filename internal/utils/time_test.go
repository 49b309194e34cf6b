package utils

import (
	"testing"
	"time"
)

func TestDayOf_StripsTimeOfDay(t *testing.T) {
	in := time.Date(2026, 3, 14, 23, 59, 58, 123, time.Local)
	got := DayOf(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Expected midnight, got %v", got)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 14 {
		t.Errorf("Expected same calendar day, got %v", got)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 8, 0, 0, 0, time.Local)
	night := time.Date(2026, 3, 14, 23, 0, 0, 0, time.Local)
	next := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	if !SameDay(morning, night) {
		t.Error("Expected same day for different times of one day")
	}
	if SameDay(night, next) {
		t.Error("Expected different days across midnight")
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "consecutive days",
			a:    time.Date(2026, 3, 14, 22, 0, 0, 0, time.Local),
			b:    time.Date(2026, 3, 15, 1, 0, 0, 0, time.Local),
			want: 1,
		},
		{
			name: "same day",
			a:    time.Date(2026, 3, 14, 1, 0, 0, 0, time.Local),
			b:    time.Date(2026, 3, 14, 23, 0, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "reverse order",
			a:    time.Date(2026, 3, 20, 0, 0, 0, 0, time.Local),
			b:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local),
			want: -6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-03-14")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 14 {
		t.Errorf("Unexpected date: %v", got)
	}

	if _, err := ParseDay("14/03/2026"); err == nil {
		t.Error("Expected error for invalid format")
	}
}
