package api

import (
	"studyroom-backend/internal/seats"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	seats *seats.Service
}

// NewHandler creates a new API handler.
func NewHandler(svc *seats.Service) *Handler {
	return &Handler{seats: svc}
}
