package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim names carried by access tokens.
const (
	ClaimUserID   = "user_id"
	ClaimUsername = "username"
	ClaimRole     = "role"
	ClaimType     = "type"

	TokenTypeAccess = "access"
)

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) *JWTService {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	now := j.now()
	expiresAt = now.Add(expDuration).Unix()

	claims := map[string]interface{}{
		ClaimUserID:   strconv.FormatInt(u.ID, 10),
		ClaimUsername: u.Username,
		ClaimRole:     string(u.Role),
		ClaimType:     TokenTypeAccess,
		"iat":         now.Unix(),
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// IdentityFromClaims rebuilds the caller identity from verified claims.
func IdentityFromClaims(claims map[string]interface{}) (user.Identity, error) {
	rawID, ok := claims[ClaimUserID].(string)
	if !ok {
		return user.Identity{}, fmt.Errorf("claim %s missing", ClaimUserID)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return user.Identity{}, fmt.Errorf("claim %s invalid", ClaimUserID)
	}

	role, ok := claims[ClaimRole].(string)
	if !ok || !user.Role(role).IsValid() {
		return user.Identity{}, fmt.Errorf("claim %s invalid", ClaimRole)
	}

	username, _ := claims[ClaimUsername].(string)

	return user.Identity{
		ID:       id,
		Username: username,
		Role:     user.Role(role),
	}, nil
}
