package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type ChatID string

// NewChatID generates a new unique ChatID
func NewChatID() ChatID {
	return ChatID(uuid.New().String())
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Validate checks if the role is valid
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return goerr.New("invalid message role", goerr.V("role", r))
	}
}

// Message is a single turn in a chat. Immutable once created; the order
// of messages within a chat is chronological and must be preserved.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Chat represents a conversation between its owners and the assistant
// about one document.
type Chat struct {
	ID         ChatID     `json:"id"`
	Title      string     `json:"title"`
	DocumentID DocumentID `json:"documentId"`
	OwnerIDs   []UserID   `json:"ownerIds"`
	Messages   []Message  `json:"messages"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// OwnedBy reports whether the given user is a member of the chat's
// owner set.
func (c *Chat) OwnedBy(userID UserID) bool {
	return slices.Contains(c.OwnerIDs, userID)
}
