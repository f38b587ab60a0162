package providers

import (
	"strings"
)

type LaunchRequest struct {
	PlayID   string `json:"play_id"`
	Provider string `json:"provider"`
	GameCode string `json:"game_code"`
	Lang     string `json:"lang"`
	Platform string `json:"platform"`
}

// GameLauncher builds the provider-hosted game URL for one player.
type GameLauncher interface {
	StartGame(req LaunchRequest) (string, error)
}

// Registry holds the configured launchers; main registers them once at
// startup with their injected configuration.
type Registry struct {
	launchers map[string]GameLauncher
}

func NewRegistry() *Registry {
	return &Registry{launchers: make(map[string]GameLauncher)}
}

func (r *Registry) Register(name string, launcher GameLauncher) {
	r.launchers[strings.ToLower(name)] = launcher
}

func (r *Registry) Get(name string) GameLauncher {
	return r.launchers[strings.ToLower(name)]
}
