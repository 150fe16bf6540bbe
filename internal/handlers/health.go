package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vachangowdas/Agrifair1/internal/pricing"
	"github.com/Vachangowdas/Agrifair1/internal/store"
)

// HealthHandler reports liveness and which integrations are active.
type HealthHandler struct {
	store  *store.Fallback
	client *pricing.Client
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(st *store.Fallback, client *pricing.Client) *HealthHandler {
	return &HealthHandler{store: st, client: client}
}

// Health reports whether the app runs cloud-backed or local-only.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	mode := "local"
	if h.store.CloudBacked() {
		mode = "cloud"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"mode":    mode,
		"pricing": h.client.Enabled(),
	})
}
