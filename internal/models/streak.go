package models

import "time"

// StreakLog records one completed day. At most one log exists per calendar
// day; the day is compared date-only, ignoring time-of-day.
type StreakLog struct {
	Date time.Time `json:"date"`
	Note string    `json:"note,omitempty"`
}

// StreakID derives the deterministic id for the one streak a user keeps per
// habit, so lookups never depend on when the streak was created.
func StreakID(userID, habitID string) string {
	return userID + "__" + habitID
}

// HabitStreak is the per-(profile, habit) completion record. It is created
// when the user joins the habit and deleted only when the member is kicked.
type HabitStreak struct {
	ID      string      `json:"id"`
	HabitID string      `json:"habit_id"`
	Name    string      `json:"name"`
	Topic   string      `json:"topic,omitempty"`
	Logs    []StreakLog `json:"logs"`
}
