package helpers

import "github.com/gofiber/fiber/v2"

// Business errors are always transport-200; only the envelope's status
// carries the outcome.
func SabaStatus(c *fiber.Ctx, status int, msg string) error {
	body := fiber.Map{"status": status}
	if msg == "" {
		body["msg"] = nil
	} else {
		body["msg"] = msg
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// SabaAuthError is the authentication envelope: it uses error_code rather
// than status and always wins over any other validation failure.
func SabaAuthError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error_code": 311,
		"message":    "Invalid Authentication Key",
	})
}
