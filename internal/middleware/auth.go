package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/auth"
	"github.com/localnerve/securepulse/internal/types"
)

// UserKey is the fiber locals key holding the *auth.Claims of the caller.
const UserKey = "user"

// TokenVerifier is satisfied by *auth.Tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthUser rejects requests without a bearer token (401) or with an
// invalid or expired one (403).
func AuthUser(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization token is required",
				Type:    types.ErrorTypeAuthorization,
			}
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Invalid or expired token",
				Type:    types.ErrorTypeAuthorization,
			}
		}

		c.Locals(UserKey, claims)
		return c.Next()
	}
}

// CurrentUser returns the claims stored by AuthUser.
func CurrentUser(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(UserKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
