package memory

import (
	"context"
	"strings"

	"github.com/didacticiel/Gpresence/internal/domain/user"
)

type userRepositoryImpl struct {
	db *DB
}

func NewUserRepository(db *DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.t.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByIdentifier matches the username exactly or the email case
// insensitively.
func (r *userRepositoryImpl) GetByIdentifier(ctx context.Context, identifier string) (user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.t.users {
		if u.Username == identifier || (u.Email != "" && strings.EqualFold(u.Email, identifier)) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.t.users {
		if u.Username == newUser.Username {
			return user.User{}, user.ErrUsernameExists
		}
		if newUser.Email != "" && strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrEmailExists
		}
	}

	now := r.db.now()
	newUser.ID = r.db.next("users")
	newUser.CreatedAt = now
	newUser.UpdatedAt = now
	r.db.t.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepositoryImpl) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.t.users {
		if u.Username == username || (email != "" && strings.EqualFold(u.Email, email)) {
			return true, nil
		}
	}
	return false, nil
}
