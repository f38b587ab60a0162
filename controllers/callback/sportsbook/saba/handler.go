package saba

import (
	sabacore "wagergate/saba"
)

// Handler adapts the settlement orchestrator onto the provider's HTTP
// callback surface. All business outcomes ride transport-200 envelopes.
type Handler struct {
	svc *sabacore.Service
}

func NewHandler(svc *sabacore.Service) *Handler {
	return &Handler{svc: svc}
}
