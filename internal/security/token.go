package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no session token")
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
)

// Identity is what the client can read out of a bearer token. Tokens are
// issued and verified by the backend; the client only extracts claims for
// display and payload construction, so the parse is unverified.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

type sessionClaims struct {
	UserID any    `json:"user_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ParseIdentity extracts the signed-in identity from a bearer token.
// An expired token counts as not signed in.
func ParseIdentity(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims := &sessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpiredToken
	}

	id := &Identity{Name: claims.Name, Email: claims.Email}
	switch v := claims.UserID.(type) {
	case string:
		id.UserID = v
	case float64:
		id.UserID = strconv.FormatInt(int64(v), 10)
	}
	if id.UserID == "" {
		id.UserID = claims.Subject
	}
	if id.UserID == "" {
		return nil, ErrInvalidToken
	}
	return id, nil
}
