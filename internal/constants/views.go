package constants

// View identifies the screen the client is currently showing.
type View string

const (
	ViewExplore       View = "explore"
	ViewHabitDetail   View = "habit"
	ViewProfile       View = "profile"
	ViewCreateHabit   View = "createHabit"
	ViewEvents        View = "events"
	ViewMessagingList View = "messagingList"
	ViewAdmin         View = "admin"
	ViewGroupHabits   View = "groupHabits"
	ViewPrivateHabits View = "privateHabits"
)

// AuthMode selects which pane the auth modal shows.
type AuthMode string

const (
	AuthModeLogin    AuthMode = "login"
	AuthModeRegister AuthMode = "register"
)
