package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	// GetByIdentifier looks a user up by username or email.
	GetByIdentifier(ctx context.Context, identifier string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
