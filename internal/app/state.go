// Package app holds the client's application state and the reducer that is
// the only writer of it. Everything the UI renders is derived from State;
// all I/O lives outside in the host shell and the sync bridge.
package app

import (
	"time"

	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/models"
)

// AuthModal is the login/register dialog.
type AuthModal struct {
	Open  bool
	Mode  constants.AuthMode
	Error string
}

// DayDetailModal shows one calendar day of a streak.
type DayDetailModal struct {
	Open     bool
	StreakID string
	Date     time.Time
}

// BoostModal collects a proof-of-payment submission for a habit.
type BoostModal struct {
	Open    bool
	HabitID string
}

// KickConfirmModal asks before removing a member from a habit.
type KickConfirmModal struct {
	Open    bool
	HabitID string
	UserID  string
}

// State is the full client state: the domain entity store, navigation and
// modal transients, and persisted preferences. It is treated as immutable;
// Apply returns a new value and never mutates nested collections in place.
type State struct {
	// Session
	CurrentUser *models.User
	Profile     *models.UserProfile

	// Domain entity store
	Habits         []models.Habit
	Users          []models.UserProfile
	Events         []models.Event
	Conversations  []models.Conversation
	BoostRequests  []models.BoostRequest
	BoostedHabitID string

	// Navigation. At most one of SelectedHabitID / ViewingProfileID is set.
	View                 constants.View
	SelectedHabitID      string
	ViewingProfileID     string
	ActiveConversationID string

	// Fragment is the canonical location fragment for the current view.
	// It is derived from committed state, never written ad hoc.
	Fragment string

	// Modals
	AuthModal   AuthModal
	DayDetail   DayDetailModal
	BoostModal  BoostModal
	KickConfirm KickConfirmModal

	// Persisted preferences. These survive logout.
	Language string
	Theme    string
}

// Initial returns the pre-login state.
func Initial() *State {
	return &State{
		View:     constants.ViewExplore,
		Fragment: string(constants.ViewExplore),
		Language: constants.DefaultLanguage,
		Theme:    constants.DefaultTheme,
	}
}

// LoggedIn reports whether a session is present.
func (s *State) LoggedIn() bool {
	return s.CurrentUser != nil
}

// IsAdmin reports whether the session user is an admin.
func (s *State) IsAdmin() bool {
	return s.CurrentUser != nil && s.CurrentUser.IsAdmin
}

// HabitByID returns the habit and whether it exists.
func (s *State) HabitByID(id string) (models.Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// ProfileByID returns the profile and whether it exists.
func (s *State) ProfileByID(id string) (models.UserProfile, bool) {
	for _, p := range s.Users {
		if p.ID == id {
			return p, true
		}
	}
	return models.UserProfile{}, false
}

// BoostedHabit returns the currently boosted habit, if any.
func (s *State) BoostedHabit() (models.Habit, bool) {
	if s.BoostedHabitID == "" {
		return models.Habit{}, false
	}
	return s.HabitByID(s.BoostedHabitID)
}
