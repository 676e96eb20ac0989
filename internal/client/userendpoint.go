package client

import (
	"context"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
)

type UserEndpoint struct {
	transport *Transport
}

// Login exchanges credentials for an access token. It never sends the
// stored token.
func (e *UserEndpoint) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	var out auth.LoginResponse

	resp, err := e.transport.PostPublic(ctx, "users/login/", req)
	if err != nil {
		return out, err
	}
	if err := decode(resp, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (e *UserEndpoint) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	var out auth.RegisterResponse

	resp, err := e.transport.PostPublic(ctx, "users/register/", req)
	if err != nil {
		return out, err
	}
	if err := decode(resp, &out); err != nil {
		return out, err
	}
	return out, nil
}
