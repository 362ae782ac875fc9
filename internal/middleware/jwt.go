package middleware // reusable HTTP middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/utils"
)

// claimsKey is the echo context key under which the gate stores the
// verified identity.
const claimsKey = "auth_claims"

// Every rejection uses the same body on purpose: a client probing the
// gate must not learn whether the header was missing, the scheme was
// wrong, the signature failed or the token expired.
var unauthorizedBody = echo.Map{"success": false, "error": "invalid or expired token"}

// JWTAuth returns the authorization gate for protected routes. It
// extracts the Bearer token from the Authorization header, verifies it
// with the given secret and stores the embedded identity in the
// request context for downstream handlers. No database lookup happens
// here; the token's claims are trusted until it expires.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, unauthorizedBody)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			cl, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, unauthorizedBody)
			}

			SetClaims(c, cl)
			return next(c)
		}
	}
}

// SetClaims attaches a verified identity to the request context. The
// gate calls this on every accepted request; tests use it to stand in
// for the gate.
func SetClaims(c echo.Context, cl utils.Claims) {
	c.Set(claimsKey, cl)
}

// ClaimsFrom returns the identity the gate attached to the request.
// The second return is false when the route is not behind JWTAuth.
func ClaimsFrom(c echo.Context) (utils.Claims, bool) {
	cl, ok := c.Get(claimsKey).(utils.Claims)
	return cl, ok
}
