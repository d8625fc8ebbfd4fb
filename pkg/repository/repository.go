package repository

import (
	"context"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
)

// Repository defines the interface for user, chat and document persistence
type Repository interface {
	// PutUser saves a user to the repository
	PutUser(ctx context.Context, user *model.User) error

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// GetUserByEmail retrieves a user by email address
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// DeleteUser removes a user from the repository
	DeleteUser(ctx context.Context, id model.UserID) error

	// PutChat saves a chat to the repository
	PutChat(ctx context.Context, chat *model.Chat) error

	// GetChat retrieves a chat by ID
	GetChat(ctx context.Context, id model.ChatID) (*model.Chat, error)

	// ListChatsByOwner retrieves all chats owned by the given user
	ListChatsByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Chat, error)

	// AppendMessages atomically replaces the chat's message sequence with
	// the stored sequence followed by the given messages. A reader never
	// observes a partially applied update.
	AppendMessages(ctx context.Context, id model.ChatID, messages []model.Message) error

	// PutDocument saves document metadata to the repository
	PutDocument(ctx context.Context, doc *model.Document) error

	// GetDocument retrieves document metadata by ID
	GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error)
}
