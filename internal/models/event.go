package models

import "time"

type EventType string

const (
	EventOnline  EventType = "online"
	EventOffline EventType = "offline"
)

// Event is immutable after creation.
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"` // HH:MM
	Type          EventType `json:"type"`
	Location      string    `json:"location,omitempty"`
	OnlineURL     string    `json:"online_url,omitempty"`
	Description   string    `json:"description,omitempty"`
	CoverImage    string    `json:"cover_image,omitempty"`
	IsFree        bool      `json:"is_free"`
	Organizer     string    `json:"organizer,omitempty"`
	Price         string    `json:"price,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
}
