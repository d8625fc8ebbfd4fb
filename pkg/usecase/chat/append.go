package chat

import (
	"context"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// AppendTurn atomically extends the chat's message sequence with the
// given messages. Existing messages are never reordered or rewritten.
func (u *UseCase) AppendTurn(ctx context.Context, chatID model.ChatID, messages []model.Message) error {
	if len(messages) == 0 {
		return goerr.New("no messages to append", goerr.V("chat_id", chatID), goerr.T(model.ErrTagBadRequest))
	}

	for _, msg := range messages {
		if err := msg.Role.Validate(); err != nil {
			return err
		}
	}

	if err := u.repo.AppendMessages(ctx, chatID, messages); err != nil {
		return goerr.Wrap(err, "failed to append turn", goerr.V("chat_id", chatID))
	}

	return nil
}
