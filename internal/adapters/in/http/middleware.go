package http

import (
	"net/http"
	"strings"

	"dispatch/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// identityKey is the echo context key holding the authenticated caller.
const identityKey = "caller-identity"

// BearerAuth verifies the Authorization header and stores the caller's
// identity on the request context. Requests without a valid token are
// rejected before reaching any handler.
func BearerAuth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			identity, err := tokens.Parse(token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "invalid or expired token",
				})
			}

			ctx.Set(identityKey, identity)
			return next(ctx)
		}
	}
}

// callerIdentity extracts the identity stored by BearerAuth.
func callerIdentity(ctx echo.Context) (auth.Identity, bool) {
	identity, ok := ctx.Get(identityKey).(auth.Identity)
	return identity, ok
}
