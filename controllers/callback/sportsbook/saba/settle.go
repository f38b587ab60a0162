package saba

import (
	"wagergate/helpers"
	sabacore "wagergate/saba"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Settle(c *fiber.Ctx) error {
	var req sabacore.SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.SabaStatus(c, sabacore.StatusMissingParam, "Missing Required Parameter")
	}

	resp, err := h.svc.Settle(c.Context(), req)
	if err != nil {
		return helpers.SabaAuthError(c)
	}
	return helpers.SabaStatus(c, resp.Status, resp.Msg)
}

func (h *Handler) Resettle(c *fiber.Ctx) error {
	var req sabacore.SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.SabaStatus(c, sabacore.StatusMissingParam, "Missing Required Parameter")
	}

	resp, err := h.svc.Resettle(c.Context(), req)
	if err != nil {
		return helpers.SabaAuthError(c)
	}
	return helpers.SabaStatus(c, resp.Status, resp.Msg)
}
