package server

import (
	"encoding/json"
	"net/http"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "not authenticated"})
		return
	}

	var body struct {
		DocumentID string `json:"documentId"`
		Title      string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, goerr.Wrap(err, "invalid request body", goerr.T(model.ErrTagBadRequest)))
		return
	}
	if body.DocumentID == "" {
		respondError(w, r, goerr.New("documentId is required", goerr.T(model.ErrTagBadRequest)))
		return
	}

	created, err := s.chats.Create(r.Context(), userID, model.DocumentID(body.DocumentID), body.Title)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, created)
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "not authenticated"})
		return
	}

	chats, err := s.chats.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"chats": chats})
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "not authenticated"})
		return
	}

	chatID := model.ChatID(chi.URLParam(r, "chatID"))
	found, err := s.chats.Get(r.Context(), userID, chatID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, found)
}
