package user

import (
	"context"
	"time"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Update changes the user's display name fields. Empty fields keep
// their current value.
func (u *UseCase) Update(ctx context.Context, userID model.UserID, firstName, lastName string) (*model.User, error) {
	user, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	user.UpdatedAt = time.Now()

	if err := u.repo.PutUser(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("user_id", userID))
	}

	return user, nil
}

// Delete removes the user's account
func (u *UseCase) Delete(ctx context.Context, userID model.UserID) error {
	if _, err := u.repo.GetUser(ctx, userID); err != nil {
		return err
	}

	if err := u.repo.DeleteUser(ctx, userID); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("user_id", userID))
	}

	return nil
}
