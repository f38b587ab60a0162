package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth guards the out-of-band management routes with a shared API
// key. Provider callbacks never pass through here; their keys live in
// the request envelope and are checked by the orchestrator.
func AdminAuth(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-Api-Key")
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "INVALID_API_KEY",
			})
		}
		return c.Next()
	}
}
