package user

import (
	"context"
	"errors"
	"time"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
)

// SignupInput contains parameters for creating a new account
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// SignupOutput is the created user with its first bearer token
type SignupOutput struct {
	User  *model.User
	Token string
}

// Signup creates a new user with a bcrypt-hashed password and issues a
// bearer token. An already registered email is rejected.
func (u *UseCase) Signup(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, goerr.New("email and password are required", goerr.T(model.ErrTagBadRequest))
	}

	existing, err := u.repo.GetUserByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, goerr.Wrap(err, "failed to check existing user")
	}
	if existing != nil {
		return nil, goerr.Wrap(model.ErrUserExists, "email already registered", goerr.V("email", input.Email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	now := time.Now()
	user := &model.User{
		ID:           model.NewUserID(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := u.repo.PutUser(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to save user", goerr.V("user_id", user.ID))
	}

	signed, err := u.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &SignupOutput{User: user, Token: signed}, nil
}
