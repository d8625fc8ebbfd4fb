package chat

import (
	"context"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Get loads a chat and checks that the requester owns it. It fails
// closed: a chat that exists but is not owned by the requester yields
// ErrUnauthorized.
func (u *UseCase) Get(ctx context.Context, userID model.UserID, chatID model.ChatID) (*model.Chat, error) {
	chat, err := u.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.OwnedBy(userID) {
		return nil, goerr.Wrap(model.ErrUnauthorized, "access denied",
			goerr.V("chat_id", chatID), goerr.V("user_id", userID))
	}

	return chat, nil
}

// List retrieves all chats owned by the given user
func (u *UseCase) List(ctx context.Context, userID model.UserID) ([]*model.Chat, error) {
	return u.repo.ListChatsByOwner(ctx, userID)
}
