package chat

import (
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/repository"
)

// UseCase owns the authoritative message history of chats
type UseCase struct {
	repo repository.Repository
}

// New creates a new chat UseCase instance
func New(repo repository.Repository) *UseCase {
	return &UseCase{repo: repo}
}
