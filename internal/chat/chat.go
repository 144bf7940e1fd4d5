// Package chat provides the chat affordance. The assistant backend is
// intentionally not wired up; every prompt receives a static reply so
// the surface stays present without calling any model provider.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role values for chat messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message.
type Message struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// unavailableReply is what the stub assistant says to everything.
const unavailableReply = "The assistant is not available in this build. " +
	"Task search and editing work from the command line and the local API."

// Assistant is the non-functional assistant stub.
type Assistant struct{}

// NewAssistant returns the stub assistant.
func NewAssistant() *Assistant { return &Assistant{} }

// Send records the user message and returns the static reply.
func (a *Assistant) Send(content string) (Message, Message) {
	now := time.Now().UTC().Format(time.RFC3339)
	user := Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: now,
	}
	reply := Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   unavailableReply,
		Timestamp: now,
	}
	return user, reply
}
