package streak

import (
	"testing"
	"time"

	"github.com/cohortapp/cohort-cli/internal/models"
)

var today = time.Date(2026, 8, 20, 12, 0, 0, 0, time.Local)

func logsOn(offsets ...int) []models.StreakLog {
	var logs []models.StreakLog
	for _, off := range offsets {
		logs = append(logs, models.StreakLog{Date: today.AddDate(0, 0, off)})
	}
	return logs
}

func TestCurrent_Empty(t *testing.T) {
	if got := Current(nil, today); got != 0 {
		t.Errorf("Current(nil) = %d, want 0", got)
	}
}

func TestCurrent_SingleLogToday(t *testing.T) {
	if got := Current(logsOn(0), today); got != 1 {
		t.Errorf("Current = %d, want 1", got)
	}
}

func TestCurrent_SingleLogYesterday(t *testing.T) {
	// Yesterday's log keeps the streak alive before today's log is made.
	if got := Current(logsOn(-1), today); got != 1 {
		t.Errorf("Current = %d, want 1", got)
	}
}

func TestCurrent_ThreeConsecutiveDays(t *testing.T) {
	if got := Current(logsOn(0, -1, -2), today); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}
}

func TestCurrent_GapBreaksStreak(t *testing.T) {
	// Logs on today and today-2: the chain breaks at the missing yesterday,
	// so only today counts.
	if got := Current(logsOn(0, -2), today); got != 1 {
		t.Errorf("Current = %d, want 1", got)
	}
}

func TestCurrent_StaleLogs(t *testing.T) {
	// Most recent log is neither today nor yesterday: streak is broken.
	if got := Current(logsOn(-2, -3, -4), today); got != 0 {
		t.Errorf("Current = %d, want 0", got)
	}
}

func TestCurrent_DuplicateTimesOfDay(t *testing.T) {
	logs := []models.StreakLog{
		{Date: time.Date(2026, 8, 20, 8, 0, 0, 0, time.Local)},
		{Date: time.Date(2026, 8, 20, 21, 30, 0, 0, time.Local)},
		{Date: time.Date(2026, 8, 19, 23, 59, 0, 0, time.Local)},
	}
	if got := Current(logs, today); got != 2 {
		t.Errorf("Current = %d, want 2 (duplicate day counted once)", got)
	}
}

func TestLongest_Empty(t *testing.T) {
	if got := Longest(nil); got != 0 {
		t.Errorf("Longest(nil) = %d, want 0", got)
	}
}

func TestLongest_SingleLog(t *testing.T) {
	if got := Longest(logsOn(-10)); got != 1 {
		t.Errorf("Longest = %d, want 1", got)
	}
}

func TestLongest_TwoSeparateRuns(t *testing.T) {
	// Two 3-day runs separated by a gap: the answer is 3, not 6.
	logs := logsOn(0, -1, -2, -10, -11, -12)
	if got := Longest(logs); got != 3 {
		t.Errorf("Longest = %d, want 3", got)
	}
}

func TestLongest_HistoricalRunBeatsCurrent(t *testing.T) {
	logs := logsOn(0, -5, -6, -7, -8)
	if got := Longest(logs); got != 4 {
		t.Errorf("Longest = %d, want 4", got)
	}
}

func TestLongest_Unsorted(t *testing.T) {
	logs := logsOn(-1, -3, 0, -2)
	if got := Longest(logs); got != 4 {
		t.Errorf("Longest = %d, want 4 regardless of input order", got)
	}
}

func TestCompletionRate_Empty(t *testing.T) {
	if got := CompletionRate(nil, today); got != 0 {
		t.Errorf("CompletionRate(nil) = %d, want 0", got)
	}
}

func TestCompletionRate_FifteenOfThirty(t *testing.T) {
	var offsets []int
	for i := 0; i < 15; i++ {
		offsets = append(offsets, -i)
	}
	if got := CompletionRate(logsOn(offsets...), today); got != 50 {
		t.Errorf("CompletionRate = %d, want 50", got)
	}
}

func TestCompletionRate_FullWindow(t *testing.T) {
	var offsets []int
	for i := 0; i < 30; i++ {
		offsets = append(offsets, -i)
	}
	if got := CompletionRate(logsOn(offsets...), today); got != 100 {
		t.Errorf("CompletionRate = %d, want 100", got)
	}
}

func TestCompletionRate_IgnoresLogsOutsideWindow(t *testing.T) {
	// One log inside the window, plenty outside it.
	logs := logsOn(0, -30, -31, -45, -60)
	if got := CompletionRate(logs, today); got != 3 {
		t.Errorf("CompletionRate = %d, want 3 (1/30 rounded)", got)
	}
}

func TestCompletionRate_FutureLogsExcluded(t *testing.T) {
	logs := logsOn(0, 1, 2)
	if got := CompletionRate(logs, today); got != 3 {
		t.Errorf("CompletionRate = %d, want 3 (only today inside window)", got)
	}
}
