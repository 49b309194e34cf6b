package models

import "time"

type HabitType string

const (
	HabitGroup   HabitType = "group"
	HabitPrivate HabitType = "private"
)

// Habit is a recurring-activity group that members post progress updates into.
// Type is immutable after creation and decides navigation and visibility.
type Habit struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Topic         string    `json:"topic"`
	Description   string    `json:"description,omitempty"`
	CreatorID     string    `json:"creator_id"`
	Members       []User    `json:"members"`
	Posts         []Post    `json:"posts"`
	Rules         string    `json:"rules,omitempty"`
	Highlight     string    `json:"highlight,omitempty"`
	HighlightIcon string    `json:"highlight_icon,omitempty"`
	MemberLimit   int       `json:"member_limit"`
	CoverImage    string    `json:"cover_image,omitempty"`
	Type          HabitType `json:"type"`
}

// Full reports whether the habit has reached its member limit.
func (h Habit) Full() bool {
	return h.MemberLimit > 0 && len(h.Members) >= h.MemberLimit
}

// HasMember reports whether the user is already a member.
func (h Habit) HasMember(userID string) bool {
	for _, m := range h.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

type ReactionType string

const (
	ReactionCheer ReactionType = "cheer"
	ReactionPush  ReactionType = "push"
)

// Reaction is a lightweight per-post endorsement, at most one per user per post.
type Reaction struct {
	UserID string       `json:"user_id"`
	Type   ReactionType `json:"type"`
}

type Comment struct {
	ID        string    `json:"id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Post belongs to exactly one habit. Within a habit, posts are kept sorted by
// Timestamp descending.
type Post struct {
	ID        string     `json:"id"`
	HabitID   string     `json:"habit_id"`
	Author    User       `json:"author"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"image_url,omitempty"`
	Streak    int        `json:"streak"`
	Reactions []Reaction `json:"reactions"`
	Comments  []Comment  `json:"comments"`
	Timestamp time.Time  `json:"timestamp"`
}
