// Package auth drives the client side of authentication: it exchanges
// credentials with the API and keeps the session in step.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/didacticiel/Gpresence/internal/client"
	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/session"
)

// UserAPI is implemented by *client.UserEndpoint.
type UserAPI interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error)
}

// WhoAmI describes the current session.
type WhoAmI struct {
	User      user.Identity `json:"user" yaml:"user"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

type SessionService struct {
	api     UserAPI
	session *session.Session
}

func NewSessionService(api UserAPI, sess *session.Session) *SessionService {
	return &SessionService{api: api, session: sess}
}

// Login validates the credentials, calls the API and starts the session.
func (s *SessionService) Login(ctx context.Context, req auth.LoginRequest) (user.Identity, error) {
	if err := req.Validate(); err != nil {
		return user.Identity{}, err
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return user.Identity{}, auth.ErrInvalidCredentials
		}
		return user.Identity{}, fmt.Errorf("login: %w", err)
	}
	if resp.Access == "" || resp.User.IsZero() {
		return user.Identity{}, fmt.Errorf("login: %w", auth.ErrInvalidToken)
	}

	if err := s.session.Start(resp.Access, resp.User); err != nil {
		return user.Identity{}, err
	}
	slog.Debug("logged in", "username", resp.User.Username, "role", resp.User.Role)
	return resp.User, nil
}

// Register creates a staff account. It does not log the new user in.
func (s *SessionService) Register(ctx context.Context, req auth.RegisterRequest) (string, error) {
	if req.Role == "" {
		req.Role = string(user.RoleStaff)
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return resp.Message, nil
}

func (s *SessionService) Logout() error {
	return s.session.Logout()
}

func (s *SessionService) WhoAmI() (WhoAmI, error) {
	identity, err := s.session.Require()
	if err != nil {
		return WhoAmI{}, err
	}
	who := WhoAmI{User: identity}
	if exp, ok := s.session.TokenExpiry(); ok {
		who.ExpiresAt = &exp
	}
	return who, nil
}
