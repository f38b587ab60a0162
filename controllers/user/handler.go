package user

import (
	"wagergate/config"
	"wagergate/player"
	"wagergate/wallet"

	"go.uber.org/zap"
)

// Handler is the out-of-band player management surface: registration,
// balance checks and game launch. Providers never call these routes.
type Handler struct {
	cfg     *config.Config
	players *player.Repository
	wallet  wallet.Gateway
	log     *zap.Logger
}

func NewHandler(cfg *config.Config, players *player.Repository, gw wallet.Gateway, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, players: players, wallet: gw, log: log}
}
