package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/oauth2"
)

// Keys of the two persisted values.
const (
	KeyAccessToken = "accessToken"
	KeyUser        = "user"
)

// Session holds the authenticated identity and its bearer token. It is
// created once per process and handed to every component that needs the
// caller's role.
type Session struct {
	store Store

	mu       sync.RWMutex
	token    string
	identity user.Identity
	hooks    []func()
}

func New(store Store) *Session {
	return &Session{store: store}
}

// Load reads the persisted token and identity. It returns auth.ErrNoSession
// when either is missing or the identity cannot be decoded.
func (s *Session) Load() error {
	token, okToken, err := s.store.Get(KeyAccessToken)
	if err != nil {
		return err
	}
	raw, okUser, err := s.store.Get(KeyUser)
	if err != nil {
		return err
	}
	if !okToken || token == "" || !okUser || raw == "" {
		s.reset()
		return auth.ErrNoSession
	}

	var identity user.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity.IsZero() {
		slog.Warn("discarding unreadable cached user profile", "error", err)
		s.reset()
		return auth.ErrNoSession
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.mu.Unlock()

	return nil
}

// Start persists a freshly issued token and its identity.
func (s *Session) Start(token string, identity user.Identity) error {
	if token == "" || identity.IsZero() {
		return fmt.Errorf("start session: %w", auth.ErrInvalidToken)
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.store.Set(KeyAccessToken, token); err != nil {
		return err
	}
	if err := s.store.Set(KeyUser, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.mu.Unlock()

	return nil
}

// Logout clears the persisted values and runs the invalidation hooks.
func (s *Session) Logout() error {
	s.reset()
	err := s.store.Delete(KeyAccessToken, KeyUser)

	s.mu.RLock()
	hooks := append([]func(){}, s.hooks...)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}

	return err
}

// OnInvalidate registers fn to run after every Logout.
func (s *Session) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Identity() (user.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, !s.identity.IsZero() && s.token != ""
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.Identity()
	return ok
}

// Require is the guard in front of every dashboard command.
func (s *Session) Require() (user.Identity, error) {
	identity, ok := s.Identity()
	if !ok {
		return user.Identity{}, auth.ErrNoSession
	}
	return identity, nil
}

// TokenSource feeds the session token to an oauth2.Transport.
func (s *Session) TokenSource() oauth2.TokenSource {
	return tokenSource{session: s}
}

// TokenExpiry decodes the exp claim without verifying the signature. It is
// informational: the API stays the only judge of validity.
func (s *Session) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	parsed, err := jwt.ParseString(token, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return time.Time{}, false
	}
	exp := parsed.Expiration()
	return exp, !exp.IsZero()
}

func (s *Session) reset() {
	s.mu.Lock()
	s.token = ""
	s.identity = user.Identity{}
	s.mu.Unlock()
}

type tokenSource struct {
	session *Session
}

func (t tokenSource) Token() (*oauth2.Token, error) {
	token := t.session.Token()
	if token == "" {
		return nil, auth.ErrNoSession
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
