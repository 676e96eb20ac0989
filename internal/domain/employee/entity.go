package employee

import (
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/user"
)

// Employee is the HR profile attached to a user account.
type Employee struct {
	ID           int64          `json:"id"`
	User         *user.Identity `json:"user,omitempty"`
	UserUsername string         `json:"user_username,omitempty"`
	UserEmail    string         `json:"user_email,omitempty"`
	Name         string         `json:"nom"`
	Position     string         `json:"poste"`
	Phone        *string        `json:"telephone,omitempty"`
	Email        *string        `json:"email,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// UserID returns the linked account id, or 0 when the profile has none.
func (e Employee) UserID() int64 {
	if e.User == nil {
		return 0
	}
	return e.User.ID
}

// ContactEmail prefers the profile email over the account email.
func (e Employee) ContactEmail() string {
	if e.Email != nil && *e.Email != "" {
		return *e.Email
	}
	return e.UserEmail
}
