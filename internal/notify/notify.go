// Package notify fans store mutations out to the affected profiles'
// notification lists. Delivery is best effort: a failed write is logged
// and abandoned and never fails the mutation that triggered it. The
// acting user is never notified about their own activity.
package notify

import (
	"time"

	"github.com/cohortapp/cohort-cli/internal/logger"
	"github.com/cohortapp/cohort-cli/internal/models"
	"github.com/cohortapp/cohort-cli/internal/storage"
)

func deliver(store storage.Provider, profileID string, n models.Notification) {
	if profileID == n.Sender.ID {
		return
	}
	n.ID = models.NewID()
	n.Timestamp = time.Now()
	if err := store.AddNotification(profileID, n); err != nil {
		logger.Warn("notification not delivered", "profile", profileID, "type", n.Type, "err", err)
	}
}

// NewPost tells every other member of the habit about a fresh post.
func NewPost(store storage.Provider, habit models.Habit, author models.User, content string) {
	n := models.Notification{
		Type:        models.NotificationNewPost,
		Sender:      author,
		HabitID:     habit.ID,
		HabitName:   habit.Name,
		PostContent: content,
	}
	for _, member := range habit.Members {
		deliver(store, member.ID, n)
	}
}

// NewReaction tells the post author who cheered or pushed them.
func NewReaction(store storage.Provider, habitName string, post models.Post, sender models.User, kind models.ReactionType) {
	deliver(store, post.Author.ID, models.Notification{
		Type:         models.NotificationNewReaction,
		Sender:       sender,
		HabitID:      post.HabitID,
		HabitName:    habitName,
		PostContent:  post.Content,
		ReactionType: kind,
	})
}

// NewMember tells the existing members that someone joined.
func NewMember(store storage.Provider, habit models.Habit, joined models.User) {
	n := models.Notification{
		Type:      models.NotificationNewMember,
		Sender:    joined,
		HabitID:   habit.ID,
		HabitName: habit.Name,
	}
	for _, member := range habit.Members {
		deliver(store, member.ID, n)
	}
}

// NewMessage tells the recipient of a private message.
func NewMessage(store storage.Provider, recipientID string, sender models.User) {
	deliver(store, recipientID, models.Notification{
		Type:   models.NotificationNewMessage,
		Sender: sender,
	})
}
