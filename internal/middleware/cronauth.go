package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// NewCronAuth guards the scheduled-trigger endpoints with a shared secret
// (`Authorization: Bearer <secret>`). With no secret configured the triggers
// are disabled rather than left open.
func NewCronAuth(secret string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if secret == "" {
			return ErrorResponse(c, fiber.StatusForbidden, "CRON_DISABLED",
				"Scheduled triggers are disabled: no CRON_SECRET configured")
		}

		auth := c.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED",
				"Invalid or missing cron secret")
		}

		return c.Next()
	}
}
