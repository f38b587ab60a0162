package saba

import (
	"wagergate/helpers"
	sabacore "wagergate/saba"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) PlaceBet(c *fiber.Ctx) error {
	var req sabacore.PlaceBetRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.SabaStatus(c, sabacore.StatusMissingParam, "Missing Required Parameter")
	}
	if req.Message.IP == "" {
		req.Message.IP = c.IP()
	}

	resp, err := h.svc.PlaceBet(c.Context(), req)
	if err != nil {
		return helpers.SabaAuthError(c)
	}
	return helpers.SabaStatus(c, resp.Status, resp.Msg)
}
