package pca

import (
	pcacore "wagergate/pca"
)

type Handler struct {
	svc *pcacore.Service
}

func NewHandler(svc *pcacore.Service) *Handler {
	return &Handler{svc: svc}
}
