package pca

import (
	pcacore "wagergate/pca"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Settle(c *fiber.Ctx) error {
	var req pcacore.SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"error": 1000, "description": "Invalid request format"})
	}
	return c.JSON(h.svc.Settle(c.Context(), req))
}

func (h *Handler) Refund(c *fiber.Ctx) error {
	var req pcacore.RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"error": 1000, "description": "Invalid request format"})
	}
	return c.JSON(h.svc.Refund(c.Context(), req))
}
