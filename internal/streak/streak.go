// Package streak computes consecutive-day statistics from a habit's
// completion logs. All functions are pure: the reference day is passed in
// explicitly and logs are never mutated.
package streak

import (
	"sort"
	"time"

	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/utils"
)

// Current returns the length of the streak running up to today. The streak
// is intact while the most recent log is today or yesterday; a missed day
// breaks it even before today's log is made.
func Current(logs []models.StreakLog, today time.Time) int {
	days := uniqueDays(logs)
	if len(days) == 0 {
		return 0
	}
	// Descending
	sort.Slice(days, func(i, j int) bool { return days[j].Before(days[i]) })

	gap := utils.DaysBetween(days[0], utils.DayOf(today))
	if gap != 0 && gap != 1 {
		return 0
	}

	count := 1
	for i := 1; i < len(days); i++ {
		if utils.DaysBetween(days[i], days[i-1]) != 1 {
			break
		}
		count++
	}
	return count
}

// Longest returns the longest consecutive-day run anywhere in the logs.
func Longest(logs []models.StreakLog) int {
	days := uniqueDays(logs)
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if utils.DaysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CompletionRate returns the percentage of the last 30 calendar days
// ([today-29, today] inclusive) that have a log, rounded to the nearest
// integer.
func CompletionRate(logs []models.StreakLog, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	end := utils.DayOf(today)
	start := end.AddDate(0, 0, -(constants.CompletionWindowDays - 1))

	completed := 0
	for _, day := range uniqueDays(logs) {
		if !day.Before(start) && !day.After(end) {
			completed++
		}
	}
	return int(float64(completed)/float64(constants.CompletionWindowDays)*100 + 0.5)
}

// CurrentNow and CompletionRateNow evaluate against the wall clock for
// callers that do not need an injected reference day. Longest has no such
// wrapper because it never consults a clock.
func CurrentNow(logs []models.StreakLog) int {
	return Current(logs, time.Now())
}

func CompletionRateNow(logs []models.StreakLog) int {
	return CompletionRate(logs, time.Now())
}

// uniqueDays collapses logs to one midnight value per calendar day. Logs
// with identical dates but different times count once.
func uniqueDays(logs []models.StreakLog) []time.Time {
	seen := make(map[string]struct{}, len(logs))
	var days []time.Time
	for _, l := range logs {
		day := utils.DayOf(l.Date)
		key := utils.DayString(day)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, day)
	}
	return days
}
