package model

import (
	"time"
)

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ChatMessage is a single persisted chat line, authored either by the user
// or by the bot. Messages are never updated after creation.
type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	IsBot     bool      `json:"is_bot" db:"is_bot"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Role returns the author role of the message.
func (m *ChatMessage) Role() Role {
	if m.IsBot {
		return RoleBot
	}
	return RoleUser
}

// SubmitMessageRequest is the request to post a user message.
type SubmitMessageRequest struct {
	Message string `json:"message" validate:"required,notblank"`
}

// SubmitResult is the outcome of posting a user message.
type SubmitResult struct {
	UserMessage  *ChatMessage `json:"userMessage"`
	BotReply     *ChatMessage `json:"botReply"`
	QuickReplies []string     `json:"quickReplies"`
}

// ChatView is everything the chat page needs to render.
type ChatView struct {
	FAQData  *FAQDocument  `json:"faqData"`
	Messages []ChatMessage `json:"messages"`
}

// ClearHistoryResponse is the response after clearing a user's history.
type ClearHistoryResponse struct {
	Status  string `json:"status"`
	Deleted int64  `json:"deleted"`
}
