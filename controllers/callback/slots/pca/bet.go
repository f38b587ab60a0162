package pca

import (
	pcacore "wagergate/pca"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Bet(c *fiber.Ctx) error {
	var req pcacore.BetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"error": 1000, "description": "Invalid request format"})
	}
	return c.JSON(h.svc.Bet(c.Context(), req))
}
