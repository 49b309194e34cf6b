package models

import (
	"sort"
	"strings"
	"time"
)

type PrivateMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation holds the message history between exactly two participants.
type Conversation struct {
	ID             string           `json:"id"`
	ParticipantIDs []string         `json:"participant_ids"`
	Messages       []PrivateMessage `json:"messages"`
}

// ConversationID derives the canonical conversation id for two participants.
// The id is the two ids sorted and joined, so lookup is a pure function of
// the pair and never requires searching message content.
func ConversationID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "__")
}
