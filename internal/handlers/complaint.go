package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Vachangowdas/Agrifair1/internal/identity"
	"github.com/Vachangowdas/Agrifair1/internal/middleware"
	"github.com/Vachangowdas/Agrifair1/internal/models"
	"github.com/Vachangowdas/Agrifair1/internal/store"
	"github.com/Vachangowdas/Agrifair1/internal/utils"
)

// ComplaintHandler manages the trader-complaint registry.
type ComplaintHandler struct {
	store    store.Store
	resolver *identity.Resolver
}

// NewComplaintHandler constructs ComplaintHandler.
func NewComplaintHandler(st store.Store, resolver *identity.Resolver) *ComplaintHandler {
	return &ComplaintHandler{store: st, resolver: resolver}
}

// ListComplaints returns the authenticated user's complaints, newest first.
func (h *ComplaintHandler) ListComplaints(c *fiber.Ctx) error {
	claims, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	// List under the same resolved id creation writes with, so a session
	// minted offline still sees its history once the cloud store takes over.
	ownerID, err := h.resolver.EnsureDurable(c.Context(), identity.Parse(claims.UserID), claims.Username, claims.Mobile)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "could not resolve your account, please try again")
	}

	pg := utils.ParsePagination(c)
	complaints, err := h.store.ListComplaintsByUser(c.Context(), ownerID, pg.Limit)
	if err != nil {
		return err
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}

	return c.JSON(fiber.Map{"success": true, "data": complaints})
}

type createComplaintRequest struct {
	TraderName string `json:"traderName"`
	Issue      string `json:"issue"`
}

// CreateComplaint registers a complaint owned by the session user. The owner
// id is resolved to a durable identity before the write so the row cannot be
// orphaned by an offline-minted id.
func (h *ComplaintHandler) CreateComplaint(c *fiber.Ctx) error {
	claims, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.TraderName == "" || req.Issue == "" {
		return fiber.NewError(fiber.StatusBadRequest, "traderName and issue are required")
	}

	ownerID, err := h.resolver.EnsureDurable(c.Context(), identity.Parse(claims.UserID), claims.Username, claims.Mobile)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "could not resolve your account, please try again")
	}

	complaint := models.Complaint{
		UserID:     ownerID,
		TraderName: req.TraderName,
		Issue:      req.Issue,
		Date:       time.Now(),
		Status:     models.ComplaintPending,
	}

	if err := h.store.CreateComplaint(c.Context(), &complaint); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": complaint})
}
