package employee

import (
	"github.com/didacticiel/Gpresence/internal/pkg/validator"
)

// EmployeeRequest is the write payload of POST /employes/ and
// PUT /employes/{id}/.
type EmployeeRequest struct {
	Name     string `json:"nom"`
	Position string `json:"poste"`
	Phone    string `json:"telephone,omitempty"`
	Email    string `json:"email,omitempty"`
	UserID   *int64 `json:"user,omitempty"`
}

func (r *EmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "nom",
			Message: "nom is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "nom",
			Message: "nom must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "poste",
			Message: "poste is required",
		})
	} else if len(r.Position) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "poste",
			Message: "poste must not exceed 100 characters",
		})
	}

	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "telephone",
			Message: "invalid phone number",
		})
	}

	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.UserID != nil && *r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user",
			Message: "user must be a positive id",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SortField names the columns the employee list can be ordered by.
type SortField string

const (
	SortByName      SortField = "nom"
	SortByPosition  SortField = "poste"
	SortByUsername  SortField = "user_username"
	SortByCreatedAt SortField = "created_at"
)

// ListQuery is applied client side on the fetched list.
type ListQuery struct {
	Search   string
	Position string
	SortBy   SortField
	Desc     bool
}

func (q *ListQuery) Validate() error {
	switch q.SortBy {
	case "", SortByName, SortByPosition, SortByUsername, SortByCreatedAt:
		return nil
	}
	return validator.ValidationErrors{{
		Field:   "sort",
		Message: "sort must be one of nom, poste, user_username, created_at",
	}}
}

type Stats struct {
	Total            int `json:"total"`
	Positions        int `json:"postes"`
	WithEmail        int `json:"avec_email"`
	CreatedThisMonth int `json:"nouveaux_ce_mois"`
}
