package app

import (
	"time"

	"github.com/cohortapp/cohort-cli/internal/constants"
	"github.com/cohortapp/cohort-cli/internal/models"
)

// Action is the closed set of state transitions. Every action is a plain
// value; the reducer owns all interpretation.
type Action interface {
	isAction()
}

// Session

type Login struct {
	User    models.User
	Profile models.UserProfile
}

type Logout struct{}

// SetInitialData replaces every collection wholesale. The sync bridge
// dispatches it after each bulk fetch; it is never a merge.
type SetInitialData struct {
	Habits         []models.Habit
	Users          []models.UserProfile
	Events         []models.Event
	Conversations  []models.Conversation
	BoostRequests  []models.BoostRequest
	BoostedHabitID string
}

// Navigation

type SelectExplore struct{}

type SelectHabit struct{ ID string }

type ViewProfile struct{ ID string }

type SelectCreateHabit struct{}

type SelectEvents struct{}

type SelectMessagingList struct{}

type SelectGroupHabits struct{}

type SelectPrivateHabits struct{}

type SelectAdminView struct{}

type SelectConversation struct{ UserID string }

// Creation

type CreateHabit struct{ Habit models.Habit }

type CreateEvent struct{ Event models.Event }

// Post mutations

type AddPost struct {
	HabitID string
	Post    models.Post
}

type UpdateReactions struct {
	HabitID string
	PostID  string
	Type    models.ReactionType
}

type AddComment struct {
	HabitID string
	PostID  string
	Comment models.Comment
}

// Membership

type JoinHabit struct{ HabitID string }

type KickMember struct {
	HabitID string
	UserID  string
}

// Streaks and profile

type UpdateStreakLog struct {
	StreakID string
	Logs     []models.StreakLog
}

type UpdateProfile struct{ Profile models.UserProfile }

type MarkNotificationsRead struct{}

// Messaging

type SendMessage struct {
	To      string
	Message models.PrivateMessage
}

// Modals

type OpenAuthModal struct{ Mode constants.AuthMode }

type CloseAuthModal struct{}

type SetAuthError struct{ Message string }

type OpenDayDetail struct {
	StreakID string
	Date     time.Time
}

type CloseDayDetail struct{}

type OpenBoostModal struct{ HabitID string }

type CloseBoostModal struct{}

type OpenKickConfirm struct {
	HabitID string
	UserID  string
}

type CloseKickConfirm struct{}

// Boost lifecycle

type AddBoostRequest struct{ Request models.BoostRequest }

type UpdateBoostRequestStatus struct {
	ID     string
	Status models.BoostStatus
}

// Preferences

type SetTheme struct{ Theme string }

type SetLanguage struct{ Language string }

func (Login) isAction()                    {}
func (Logout) isAction()                   {}
func (SetInitialData) isAction()           {}
func (SelectExplore) isAction()            {}
func (SelectHabit) isAction()              {}
func (ViewProfile) isAction()              {}
func (SelectCreateHabit) isAction()        {}
func (SelectEvents) isAction()             {}
func (SelectMessagingList) isAction()      {}
func (SelectGroupHabits) isAction()        {}
func (SelectPrivateHabits) isAction()      {}
func (SelectAdminView) isAction()          {}
func (SelectConversation) isAction()       {}
func (CreateHabit) isAction()              {}
func (CreateEvent) isAction()              {}
func (AddPost) isAction()                  {}
func (UpdateReactions) isAction()          {}
func (AddComment) isAction()               {}
func (JoinHabit) isAction()                {}
func (KickMember) isAction()               {}
func (UpdateStreakLog) isAction()          {}
func (UpdateProfile) isAction()            {}
func (MarkNotificationsRead) isAction()    {}
func (SendMessage) isAction()              {}
func (OpenAuthModal) isAction()            {}
func (CloseAuthModal) isAction()           {}
func (SetAuthError) isAction()             {}
func (OpenDayDetail) isAction()            {}
func (CloseDayDetail) isAction()           {}
func (OpenBoostModal) isAction()           {}
func (CloseBoostModal) isAction()          {}
func (OpenKickConfirm) isAction()          {}
func (CloseKickConfirm) isAction()         {}
func (AddBoostRequest) isAction()          {}
func (UpdateBoostRequestStatus) isAction() {}
func (SetTheme) isAction()                 {}
func (SetLanguage) isAction()              {}
