// Package calendar projects streak logs onto fixed 7-wide grids for
// rendering: a rolling activity grid for profiles and a month grid for the
// day-detail view.
package calendar

import (
	"time"

	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/utils"
)

// Cell is one day in a projected grid.
type Cell struct {
	Date      time.Time
	Completed bool
	IsToday   bool
	Future    bool
	// InMonth is false for the leading/trailing padding days of a month grid.
	InMonth bool
}

// Week is a row of seven cells, Monday first.
type Week [7]Cell

// ActivityGrid returns the last ActivityGridWeeks*7 days ending today as
// week rows, oldest first. Cells are flagged against the log set with
// time-of-day ignored.
func ActivityGrid(logs []models.StreakLog, today time.Time) []Week {
	end := utils.DayOf(today)
	days := constants.ActivityGridWeeks * 7
	start := end.AddDate(0, 0, -(days - 1))

	completed := completedDays(logs)
	weeks := make([]Week, constants.ActivityGridWeeks)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		weeks[i/7][i%7] = cellFor(day, end, completed, true)
	}
	return weeks
}

// MonthGrid returns the given month as full week rows, padded with the
// surrounding days so every row holds exactly seven cells.
func MonthGrid(year int, month time.Month, logs []models.StreakLog, today time.Time) []Week {
	end := utils.DayOf(today)
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	last := first.AddDate(0, 1, -1)

	// Walk back to Monday.
	lead := (int(first.Weekday()) + 6) % 7
	cursor := first.AddDate(0, 0, -lead)

	completed := completedDays(logs)
	var weeks []Week
	for !cursor.After(last) {
		var week Week
		for i := 0; i < 7; i++ {
			day := cursor.AddDate(0, 0, i)
			week[i] = cellFor(day, end, completed, day.Month() == month && day.Year() == year)
		}
		weeks = append(weeks, week)
		cursor = cursor.AddDate(0, 0, 7)
	}
	return weeks
}

func cellFor(day, today time.Time, completed map[string]struct{}, inMonth bool) Cell {
	_, done := completed[utils.DayString(day)]
	return Cell{
		Date:      day,
		Completed: done,
		IsToday:   utils.SameDay(day, today),
		Future:    day.After(today),
		InMonth:   inMonth,
	}
}

func completedDays(logs []models.StreakLog) map[string]struct{} {
	days := make(map[string]struct{}, len(logs))
	for _, l := range logs {
		days[utils.DayString(utils.DayOf(l.Date))] = struct{}{}
	}
	return days
}
