package handler

import (
	"context"
	"time"

	"intern-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health fails only when the database is down; a missing cache is reported
// but tolerated.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := map[string]string{"database": "ok", "cache": "ok"}

	if h.db == nil {
		checks["database"] = "unconfigured"
		status = fiber.StatusServiceUnavailable
	} else if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "down"
		status = fiber.StatusServiceUnavailable
	}

	if h.cache == nil {
		checks["cache"] = "unconfigured"
	} else if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = "down"
	}

	return response.Success(c, status, response.DefaultMessage(status), checks)
}
