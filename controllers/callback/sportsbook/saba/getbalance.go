package saba

import (
	"wagergate/helpers"
	sabacore "wagergate/saba"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	var req sabacore.GetBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.SabaStatus(c, sabacore.StatusMissingParam, "Missing Required Parameter")
	}

	resp, err := h.svc.GetBalance(c.Context(), req)
	if err != nil {
		return helpers.SabaAuthError(c)
	}
	return c.JSON(resp)
}
