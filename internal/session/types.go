// Package session provides in-memory chat session storage.
//
// Responsibilities: track chat sessions and their ordered message history
// for the lifetime of the process. Nothing is persisted across restarts.
// Thread Safety: Store is safe for concurrent use; see store.go.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Role constants define valid message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single conversation message.
// Messages are immutable once appended; ordering within a session is
// insertion order and defines the conversational context fed to the model.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session represents a conversation session.
type Session struct {
	ChatID    string
	UserID    string
	CreatedAt time.Time
	messages  []Message
}

// Metadata is the session summary returned by Store.ListSessions.
type Metadata struct {
	ChatID       string    `json:"chatId"`
	UserID       string    `json:"userId,omitempty"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	FirstMessage string    `json:"firstMessage,omitempty"`
}

// firstMessagePreviewLen bounds the preview text in session listings.
const firstMessagePreviewLen = 100

// newMessage builds a message with a generated ID and UTC timestamp.
func newMessage(role, content string) Message {
	return Message{
		ID:        "msg-" + uuid.NewString()[:8],
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// preview returns the first user message truncated for listings.
func preview(messages []Message) string {
	for _, m := range messages {
		if m.Role != RoleUser {
			continue
		}
		if len(m.Content) > firstMessagePreviewLen {
			return m.Content[:firstMessagePreviewLen] + "..."
		}
		return m.Content
	}
	return ""
}
