package pca

import (
	"github.com/gofiber/fiber/v2"
)

type tokenBody struct {
	Token string `json:"token"`
}

func (h *Handler) Authenticate(c *fiber.Ctx) error {
	var body tokenBody
	if err := c.BodyParser(&body); err != nil {
		return c.JSON(fiber.Map{"error": 1000, "description": "Invalid request format"})
	}
	return c.JSON(h.svc.Authenticate(c.Context(), body.Token))
}

func (h *Handler) Balance(c *fiber.Ctx) error {
	var body tokenBody
	if err := c.BodyParser(&body); err != nil {
		return c.JSON(fiber.Map{"error": 1000, "description": "Invalid request format"})
	}
	return c.JSON(h.svc.Balance(c.Context(), body.Token))
}
