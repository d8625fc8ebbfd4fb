package user

import (
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/repository"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/token"
)

// UseCase provides account operations: signup, login, update and delete
type UseCase struct {
	repo   repository.Repository
	issuer *token.Issuer
}

// New creates a new user UseCase instance
func New(repo repository.Repository, issuer *token.Issuer) *UseCase {
	return &UseCase{
		repo:   repo,
		issuer: issuer,
	}
}
