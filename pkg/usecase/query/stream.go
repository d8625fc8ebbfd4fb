package query

import (
	"context"
	"iter"
	"strings"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/broadcast"
	"github.com/m-mizutani/goerr/v2"
)

// consume drives the completion stream to exhaustion. Each increment is
// accumulated and published to the broadcast hub in strict arrival
// order; delivery to observers is best effort and never blocks the
// pipeline. A stream that errors, or ends without a single non-empty
// increment, fails the whole turn.
func (u *UseCase) consume(ctx context.Context, chatID model.ChatID, stream iter.Seq2[string, error]) ([]model.Message, error) {
	var increments []model.Message

	for text, err := range stream {
		if err != nil {
			return nil, goerr.Wrap(err, "completion stream failed",
				goerr.V("chat_id", chatID), goerr.T(model.ErrTagInternal))
		}
		if text == "" {
			continue
		}

		msg := model.Message{Role: model.RoleAssistant, Content: text}
		increments = append(increments, msg)

		u.hub.Publish(broadcast.Event{
			ChatID:  chatID,
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	if len(increments) == 0 {
		return nil, goerr.Wrap(model.ErrEmptyCompletion, "stream ended without content", goerr.V("chat_id", chatID))
	}

	return increments, nil
}

// coalesce merges the per-increment messages into the single assistant
// message that gets persisted. The per-increment shape is in-memory
// bookkeeping only.
func coalesce(increments []model.Message) model.Message {
	var b strings.Builder
	for _, msg := range increments {
		b.WriteString(msg.Content)
	}

	return model.Message{Role: model.RoleAssistant, Content: b.String()}
}
