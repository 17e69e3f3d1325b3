// Package session keeps per-user dialogue history in memory with inactivity expiry.
package session

import (
	"errors"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const DefaultTTL = 30 * time.Minute

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRole     = errors.New("invalid message role")
)

// Message is one immutable conversation turn.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a snapshot handed out by the Store. Mutating it does not touch
// the stored conversation.
type Session struct {
	ID             string    `json:"id"`
	SystemPrompt   string    `json:"system_prompt"`
	Messages       []Message `json:"messages"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// LastMessage returns the most recent turn, if any.
func (s *Session) LastMessage() (Message, bool) {
	if s == nil || len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
