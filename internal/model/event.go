package model

import (
	"time"
)

// EventType represents the type of chat event.
type EventType string

const (
	EventTypeCleared EventType = "cleared"
)

// ChatEvent represents a non-message event in a user's chat history.
type ChatEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      EventType `json:"type"`
	Deleted   int64     `json:"deleted,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
