package server

import (
	"encoding/json"
	"net/http"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type errorBody struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Default().Error("failed to encode response", "error", err)
	}
}

// respondError maps the error taxonomy to HTTP status classes: missing
// entities to 404, bad input and ownership failures to 400, everything
// else to 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case goerr.HasTag(err, model.ErrTagNotFound):
		status = http.StatusNotFound
	case goerr.HasTag(err, model.ErrTagUnauthorized),
		goerr.HasTag(err, model.ErrTagBadRequest):
		status = http.StatusBadRequest
	}

	logger := logging.From(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}

	respondJSON(w, status, errorBody{Message: err.Error()})
}
