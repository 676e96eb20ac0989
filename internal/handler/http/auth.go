package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	accounts auth.AuthService
}

func NewAuthHandler(accounts auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{accounts: accounts}
}

// Login answers {access, user}. Bad credentials get the bare {error} body
// with 401, which is what login forms display.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	session, err := h.accounts.Login(r.Context(), req)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.Info("Login rejected", "identifier", req.Identifier)
		response.JSON(w, http.StatusUnauthorized, auth.ErrorResponse{Error: err.Error()})
	case err != nil:
		slog.Error("Login failed", "identifier", req.Identifier, "error", err)
		response.HandleError(w, err)
	default:
		slog.Info("User logged in", "user_id", session.User.ID, "role", session.User.Role)
		response.JSON(w, http.StatusOK, session)
	}
}

// Register creates a staff account; the requested role is ignored.
func (h *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}
