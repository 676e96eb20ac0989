package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth and user domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Ce nom d'utilisateur est déjà pris")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Cet email est déjà utilisé")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUserAlreadyLinked):
		Conflict(w, "User already has an employee profile")

	// Presence domain errors
	case errors.Is(err, presence.ErrPresenceNotFound):
		NotFound(w, "Presence not found")
	case errors.Is(err, presence.ErrSelfServiceStaffOnly), errors.Is(err, presence.ErrNotOwner):
		Forbidden(w, err.Error())
	case presence.IsBusinessRule(err):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrNoAuthorProfile):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
