package server

import (
	"encoding/json"
	"net/http"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/query"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Message: "not authenticated"})
		return
	}

	var body struct {
		Query string `json:"query"`
		ID    string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, goerr.Wrap(err, "invalid request body", goerr.T(model.ErrTagBadRequest)))
		return
	}
	if body.ID == "" {
		respondError(w, r, goerr.New("chat id is required", goerr.T(model.ErrTagBadRequest)))
		return
	}

	increments, err := s.query.Answer(r.Context(), query.Input{
		UserID: userID,
		ChatID: model.ChatID(body.ID),
		Query:  body.Query,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"response": increments})
}
