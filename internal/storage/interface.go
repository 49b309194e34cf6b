package storage

import "github.com/cohortapp/cohort-cli/internal/models"

// Prefs are the persisted user preferences that survive logout.
type Prefs struct {
	Theme    string
	Language string
}

// Provider is the backing store contract. Bulk reads return fully nested
// records; mutations are simple keyed writes that fire the change notifier
// after commit. There is no delta read: consumers refetch everything on any
// notification.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Bulk reads
	GetAllHabits() ([]models.Habit, error)
	GetAllProfiles() ([]models.UserProfile, error)
	GetAllEvents() ([]models.Event, error)
	GetAllBoostRequests() ([]models.BoostRequest, error)
	GetAllConversations() ([]models.Conversation, error)
	GetBoostedHabitID() (string, error)

	// Keyed lookups
	GetHabit(id string) (models.Habit, error)
	GetProfile(id string) (models.UserProfile, error)

	// Habits and membership
	AddHabit(models.Habit) error
	AddMember(habitID string, user models.User) error
	RemoveMember(habitID, userID string) error

	// Posts
	AddPost(models.Post) error
	AddComment(postID string, comment models.Comment) error
	SetReactions(postID string, reactions []models.Reaction) error

	// Profiles and streaks
	AddProfile(models.UserProfile) error
	UpdateProfile(models.UserProfile) error
	AddStreak(profileID string, streak models.HabitStreak) error
	DeleteStreak(profileID, streakID string) error
	UpdateStreakLogs(profileID, streakID string, logs []models.StreakLog) error

	// Events
	AddEvent(models.Event) error

	// Boosts
	AddBoostRequest(models.BoostRequest) error
	UpdateBoostRequestStatus(id string, status models.BoostStatus) error

	// Messaging
	AddMessage(conversationID string, participantIDs []string, msg models.PrivateMessage) error

	// Notifications
	AddNotification(profileID string, n models.Notification) error
	MarkNotificationsRead(profileID string) error

	// Preferences
	GetPrefs() (Prefs, error)
	SavePrefs(Prefs) error

	// Notifier exposes the coarse change stream.
	Notifier() *Notifier
}
