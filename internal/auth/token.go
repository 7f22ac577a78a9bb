// Package auth provides password hashing, bearer token issuing/validation and
// the per-request identity plumbing used by the GraphQL resolvers.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/movie-catalog/internal/apperr"
)

// Identity is the authenticated actor decoded from a signed token. It is
// trusted as-is for the duration of the request; no database re-check happens
// on the hot path.
type Identity struct {
	ID       string
	Username string
	Email    string
}

// NewAccessToken builds and signs an HS256 JWT for a user. The token carries
// the user id (sub), username and email claims plus the standard exp/iat pair.
func NewAccessToken(secret string, id Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      id.ID,
		"username": id.Username,
		"email":    id.Email,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAccessToken validates signature and expiry and returns the embedded
// identity. Any failure maps to Unauthenticated.
func ParseAccessToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, apperr.Unauthenticated("invalid or expired token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperr.Unauthenticated("invalid or expired token")
	}
	id := Identity{}
	if v, ok := claims["sub"].(string); ok {
		id.ID = v
	}
	if v, ok := claims["username"].(string); ok {
		id.Username = v
	}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if id.ID == "" || id.Username == "" {
		return Identity{}, apperr.Unauthenticated("invalid or expired token")
	}
	return id, nil
}

// FromAuthorizationHeader authenticates a raw Authorization header value.
// The header must have the exact shape "Bearer <token>".
func FromAuthorizationHeader(secret, header string) (Identity, error) {
	if header == "" {
		return Identity{}, apperr.Unauthenticated("authorization header required")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" {
		return Identity{}, apperr.Unauthenticated("authentication token must be 'Bearer <token>'")
	}
	return ParseAccessToken(secret, token)
}
