package user

import (
	"strings"

	"wagergate/helpers"
	"wagergate/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type registerRequest struct {
	Username string `json:"username"`
	WebID    string `json:"web_id"`
	Currency string `json:"currency"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "Invalid request format")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Username == "" || req.WebID == "" || req.Currency == "" {
		return helpers.JSONError(c, "username, web_id and currency are required")
	}

	// every player currency must land in exactly one scaling set
	if _, err := h.cfg.Normalize(decimal.NewFromInt(1), req.Currency); err != nil {
		return helpers.JSONError(c, "unsupported currency")
	}

	p := &models.Player{
		PlayID:   uuid.NewString(),
		Username: req.Username,
		WebID:    req.WebID,
		Currency: req.Currency,
		IsActive: true,
	}
	if err := h.players.Create(p); err != nil {
		h.log.Warn("player registration failed", zap.Error(err))
		return helpers.JSONError(c, "failed to register player")
	}

	return helpers.JSONSuccess(c, "player registered", fiber.Map{
		"play_id":  p.PlayID,
		"username": p.Username,
		"currency": p.Currency,
	})
}
