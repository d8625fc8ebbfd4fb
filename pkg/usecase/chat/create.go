package chat

import (
	"context"
	"time"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Create starts a new chat about the given document. The creator
// becomes the chat's owner.
func (u *UseCase) Create(
	ctx context.Context,
	ownerID model.UserID,
	documentID model.DocumentID,
	title string,
) (*model.Chat, error) {
	doc, err := u.repo.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = doc.Title
	}

	now := time.Now()
	chat := &model.Chat{
		ID:         model.NewChatID(),
		Title:      title,
		DocumentID: doc.ID,
		OwnerIDs:   []model.UserID{ownerID},
		Messages:   []model.Message{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := u.repo.PutChat(ctx, chat); err != nil {
		return nil, goerr.Wrap(err, "failed to save new chat", goerr.V("chat_id", chat.ID))
	}

	return chat, nil
}
