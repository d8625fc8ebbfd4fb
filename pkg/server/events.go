package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// handleEvents streams one conversation's live assistant increments
// over Server-Sent Events. The feed is scoped to the requested chat and
// only its owners may attach. Delivery is best effort, missed events
// are not replayed.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "not authenticated"})
		return
	}

	chatID := model.ChatID(r.URL.Query().Get("chatId"))
	if chatID == "" {
		respondError(w, r, goerr.New("chatId is required", goerr.T(model.ErrTagBadRequest)))
		return
	}

	if _, err := s.chats.Get(r.Context(), userID, chatID); err != nil {
		respondError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondJSON(w, http.StatusInternalServerError, errorBody{Message: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := s.hub.Subscribe(chatID)
	defer cancel()

	logger := logging.From(r.Context())
	logger.Info("observer connected", "chat_id", chatID)
	defer logger.Info("observer disconnected", "chat_id", chatID)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				logger.Error("failed to marshal event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: chat_message\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
