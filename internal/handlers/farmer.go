package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Vachangowdas/Agrifair1/internal/config"
	"github.com/Vachangowdas/Agrifair1/internal/identity"
	"github.com/Vachangowdas/Agrifair1/internal/middleware"
	"github.com/Vachangowdas/Agrifair1/internal/models"
	"github.com/Vachangowdas/Agrifair1/internal/store"
	"github.com/Vachangowdas/Agrifair1/internal/utils"
)

// FarmerHandler manages the community spotlight.
type FarmerHandler struct {
	store    store.Store
	resolver *identity.Resolver
	cfg      *config.Config
}

// NewFarmerHandler constructs FarmerHandler.
func NewFarmerHandler(st store.Store, resolver *identity.Resolver, cfg *config.Config) *FarmerHandler {
	return &FarmerHandler{store: st, resolver: resolver, cfg: cfg}
}

// ListFarmers returns spotlight profiles, newest first. The home view passes
// ?limit=4.
func (h *FarmerHandler) ListFarmers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	farmers, err := h.store.ListFeaturedFarmers(c.Context(), pg.Limit)
	if err != nil {
		return err
	}
	if farmers == nil {
		farmers = []models.FeaturedFarmer{}
	}

	return c.JSON(fiber.Map{"success": true, "data": farmers})
}

type upsertFarmerRequest struct {
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Photo string `json:"photo"`
}

// UpsertFarmer creates or replaces the session user's spotlight profile.
// Upserts key on the resolved durable user id, so repeated writes replace
// the same row instead of duplicating it.
func (h *FarmerHandler) UpsertFarmer(c *fiber.Ctx) error {
	claims, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req upsertFarmerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	ownerID, err := h.resolver.EnsureDurable(c.Context(), identity.Parse(claims.UserID), claims.Username, claims.Mobile)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "could not resolve your account, please try again")
	}

	farmer := models.FeaturedFarmer{
		UserID: ownerID,
		Name:   req.Name,
		Bio:    req.Bio,
		Photo:  req.Photo,
		Date:   time.Now(),
	}

	if err := h.store.UpsertFeaturedFarmer(c.Context(), &farmer); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": farmer})
}

// DeleteFarmer removes a spotlight profile. Admins may remove any profile;
// everyone else only their own.
func (h *FarmerHandler) DeleteFarmer(c *fiber.Ctx) error {
	claims, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	targetID := c.Params("userId")
	if targetID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId is required")
	}

	// Admin authority comes from the pinned mobile, not the stored role.
	isAdmin := claims.Mobile == h.cfg.AdminMobile
	if !isAdmin {
		ownerID, err := h.resolver.EnsureDurable(c.Context(), identity.Parse(claims.UserID), claims.Username, claims.Mobile)
		if err != nil || ownerID != targetID {
			return fiber.NewError(fiber.StatusForbidden, "you can only remove your own profile")
		}
	}

	if err := h.store.DeleteFeaturedFarmer(c.Context(), targetID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
