package user

import (
	"context"
	"errors"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies the email and password pair and issues a bearer token.
// A missing user and a wrong password are indistinguishable to the
// caller.
func (u *UseCase) Login(ctx context.Context, email, password string) (*SignupOutput, error) {
	user, err := u.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, goerr.Wrap(model.ErrInvalidCredentials, "unknown email")
		}
		return nil, goerr.Wrap(err, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidCredentials, "password mismatch", goerr.V("user_id", user.ID))
	}

	signed, err := u.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &SignupOutput{User: user, Token: signed}, nil
}
