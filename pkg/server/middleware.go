package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/utils/logging"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey struct{}

var userIDKey = contextKey{}

// userIDFrom retrieves the authenticated user identity set by the
// authenticate middleware.
func userIDFrom(ctx context.Context) (model.UserID, bool) {
	id, ok := ctx.Value(userIDKey).(model.UserID)
	return id, ok
}

// authenticate verifies the bearer token and attaches the requesting
// identity to the context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		rawToken, found := strings.CutPrefix(header, "Bearer ")
		if !found || rawToken == "" {
			respondJSON(w, http.StatusUnauthorized, errorBody{Message: "missing bearer token"})
			return
		}

		userID, err := s.issuer.Verify(rawToken)
		if err != nil {
			logging.From(r.Context()).Warn("token verification failed", "error", err)
			respondJSON(w, http.StatusUnauthorized, errorBody{Message: "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs each request and attaches a request-scoped logger
// to the context.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
