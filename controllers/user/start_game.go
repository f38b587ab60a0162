package user

import (
	"wagergate/helpers"
	"wagergate/providers"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LaunchGame routes through the provider launcher registry.
func (h *Handler) LaunchGame(registry *providers.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req providers.LaunchRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "Invalid request format")
		}
		if req.PlayID == "" || req.Provider == "" {
			return helpers.JSONError(c, "play_id and provider are required")
		}

		launcher := registry.Get(req.Provider)
		if launcher == nil {
			return helpers.JSONError(c, "unknown provider")
		}

		gameURL, err := launcher.StartGame(req)
		if err != nil {
			h.log.Error("game launch failed", zap.String("provider", req.Provider), zap.Error(err))
			return helpers.JSONError(c, "failed to launch game")
		}
		return helpers.JSONSuccess(c, "game launched", fiber.Map{"url": gameURL})
	}
}
