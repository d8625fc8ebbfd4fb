package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type UserID string

// NewUserID generates a new unique UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

type User struct {
	ID        UserID    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Bcrypt hash, never serialized into API responses
	PasswordHash string `json:"-"`
}

// Validate checks if the user has the fields required for signup
func (u *User) Validate() error {
	if u.Email == "" {
		return goerr.New("user email is empty")
	}
	if u.PasswordHash == "" {
		return goerr.New("user password hash is empty")
	}
	return nil
}
