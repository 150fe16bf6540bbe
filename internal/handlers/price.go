package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vachangowdas/Agrifair1/internal/pricing"
)

// PriceHandler exposes the AI fair-price calculator.
type PriceHandler struct {
	client *pricing.Client
}

// NewPriceHandler constructs PriceHandler.
func NewPriceHandler(client *pricing.Client) *PriceHandler {
	return &PriceHandler{client: client}
}

type calculateRequest struct {
	pricing.CropInput
	Language string `json:"language"`
}

// Calculate runs one fair-price advisory. Any upstream failure aborts the
// operation with a single readable message; nothing partial is returned.
func (h *PriceHandler) Calculate(c *fiber.Ctx) error {
	var req calculateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.CropName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "cropName is required")
	}
	if req.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be positive")
	}
	if req.Language == "" {
		req.Language = pricing.LangEnglish
	}
	if !pricing.ValidLanguage(req.Language) {
		return fiber.NewError(fiber.StatusBadRequest, "unsupported language")
	}

	result, err := h.client.CalculateFairPrice(c.Context(), req.CropInput, req.Language)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}
