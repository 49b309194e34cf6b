package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the immutable identity reference. Denormalized copies of Name and
// AvatarURL are embedded in Post authors, Comment authors, and Habit members;
// the reducer refreshes every copy on profile updates.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
}

// Badge is a cosmetic achievement shown on a profile.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description,omitempty"`
}

type NotificationType string

const (
	NotificationNewMessage  NotificationType = "new_message"
	NotificationNewReaction NotificationType = "new_reaction"
	NotificationNewPost     NotificationType = "new_post"
	NotificationNewMember   NotificationType = "new_member"
)

type Notification struct {
	ID           string           `json:"id"`
	Type         NotificationType `json:"type"`
	Sender       User             `json:"sender"`
	HabitID      string           `json:"habit_id,omitempty"`
	HabitName    string           `json:"habit_name,omitempty"`
	PostContent  string           `json:"post_content,omitempty"`
	ReactionType ReactionType     `json:"reaction_type,omitempty"`
	IsRead       bool             `json:"is_read"`
	Timestamp    time.Time        `json:"timestamp"`
}

// UserProfile is the one-per-account record created at registration.
type UserProfile struct {
	User
	Motto             string         `json:"motto,omitempty"`
	MemberSince       time.Time      `json:"member_since"`
	TotalDaysActive   int            `json:"total_days_active"`
	Level             string         `json:"level,omitempty"`
	CheersGiven       int            `json:"cheers_given"`
	PushesGiven       int            `json:"pushes_given"`
	CheckInPercentage int            `json:"check_in_percentage"`
	Streaks           []HabitStreak  `json:"streaks"`
	Badges            []Badge        `json:"badges,omitempty"`
	Notifications     []Notification `json:"notifications,omitempty"`
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.New().String()
}
