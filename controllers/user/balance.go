package user

import (
	"wagergate/helpers"
	"wagergate/wallet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type balanceRequest struct {
	WebID    string `json:"web_id"`
	Username string `json:"username"`
}

func (h *Handler) CheckBalance(c *fiber.Ctx) error {
	var req balanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "Invalid request format")
	}

	p, err := h.players.FindByUsername(req.WebID, req.Username)
	if err != nil {
		return helpers.JSONError(c, "player not found")
	}

	env, err := h.wallet.Balance(c.Context(), wallet.Credentials{WebID: p.WebID, Status: "1"}, p.PlayID)
	if err != nil {
		h.log.Error("balance lookup failed", zap.String("play_id", p.PlayID), zap.Error(err))
		return helpers.JSONError(c, "wallet unavailable")
	}
	credit, err := env.CreditValue()
	if err != nil {
		return helpers.JSONError(c, "wallet unavailable")
	}

	display, err := h.cfg.Denormalize(credit, p.Currency)
	if err != nil {
		return helpers.JSONError(c, "unsupported currency")
	}
	return helpers.JSONSuccess(c, "balance", fiber.Map{
		"play_id":  p.PlayID,
		"currency": p.Currency,
		"balance":  display,
	})
}
