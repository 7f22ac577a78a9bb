package middleware

// identity.go extracts the caller's identity once at the HTTP boundary.
// Resolvers never re-parse headers: they read the identity (or the recorded
// extraction failure) from the request context via the auth package.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/auth"
)

// Identity returns an Echo middleware that authenticates the Authorization
// header when present. A missing header leaves the request anonymous; a
// present but invalid header records the failure so operations that require
// authentication can report exactly why the credential was rejected.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			ctx := c.Request().Context()
			if id, err := auth.FromAuthorizationHeader(secret, header); err != nil {
				ctx = auth.WithError(ctx, err)
			} else {
				ctx = auth.WithIdentity(ctx, id)
			}
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
