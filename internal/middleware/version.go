package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	APIVersion       = "1.0.0"
	APIVersionHeader = "X-Api-Version"
)

// VersionMiddleware records the API version the client asked for and echoes
// the served version on every response.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get(APIVersionHeader, APIVersion)

		// Support version aliases
		if version == "1" || version == "1.0" {
			version = APIVersion
		}

		c.Locals("apiVersion", version)
		c.Set(APIVersionHeader, APIVersion)

		return c.Next()
	}
}
