package server

import (
	"net/http"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/broadcast"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/token"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/chat"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/query"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server exposes the API over HTTP
type Server struct {
	users  *user.UseCase
	chats  *chat.UseCase
	query  *query.UseCase
	hub    *broadcast.Hub
	issuer *token.Issuer
}

// New creates a new API server
func New(
	users *user.UseCase,
	chats *chat.UseCase,
	queryUC *query.UseCase,
	hub *broadcast.Hub,
	issuer *token.Issuer,
) *Server {
	return &Server{
		users:  users,
		chats:  chats,
		query:  queryUC,
		hub:    hub,
		issuer: issuer,
	}
}

// Router builds the HTTP route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/signup", s.handleSignup)
		r.Post("/users/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Put("/users", s.handleUpdateUser)
			r.Delete("/users", s.handleDeleteUser)

			r.Post("/chats", s.handleCreateChat)
			r.Get("/chats", s.handleListChats)
			r.Get("/chats/{chatID}", s.handleGetChat)

			r.Post("/query", s.handleQuery)
			r.Get("/events", s.handleEvents)
		})
	})

	return r
}
