package auth

import (
	"context"
)

// AuthService issues access tokens and registers staff accounts.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
}
