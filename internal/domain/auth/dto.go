package auth

import (
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/validator"
)

type LoginRequest struct {
	// Identifier is a username or an email address.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identifier) {
		errs = append(errs, validator.ValidationError{
			Field:   "identifier",
			Message: "identifier is required",
		})
	} else if len(r.Identifier) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "identifier",
			Message: "identifier must not exceed 254 characters",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	Access string        `json:"access"`
	User   user.Identity `json:"user"`
}

// RegisterRequest creates a staff account. Other roles are assigned by an
// administrator, never through self registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3 to 150 letters, digits or @.+-_",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if !validator.IsStrongPassword(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password needs 8 characters, one uppercase letter, one digit and one special character",
		})
	}

	if r.Role != "" && r.Role != string(user.RoleStaff) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "only staff accounts can self register",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegisterResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body the API returns on a failed login.
type ErrorResponse struct {
	Error string `json:"error"`
}
