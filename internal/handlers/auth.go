package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vachangowdas/Agrifair1/internal/auth"
	"github.com/Vachangowdas/Agrifair1/internal/middleware"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type requestOTPRequest struct {
	Mobile string `json:"mobile"`
	Mode   string `json:"mode"`
}

// RequestOTP issues a one-time code for login or signup. The code rides back
// in the response; an SMS gateway integration would deliver it instead.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req requestOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	mode := auth.Mode(req.Mode)
	if req.Mode == "" {
		mode = auth.ModeLogin
	}

	res := h.svc.RequestOTP(c.Context(), mode, req.Mobile)
	if !res.Success {
		return c.Status(fiber.StatusBadRequest).JSON(res)
	}
	return c.JSON(res)
}

type loginRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

// Login verifies the submitted code and opens a session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	res := h.svc.Login(c.Context(), req.Mobile, req.OTP)
	if !res.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(res)
	}
	return c.JSON(res)
}

type signupRequest struct {
	Username string `json:"username"`
	Mobile   string `json:"mobile"`
	OTP      string `json:"otp"`
}

// Signup verifies the submitted code and creates a new account.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	res := h.svc.Signup(c.Context(), req.Username, req.Mobile, req.OTP)
	if !res.Success {
		return c.Status(fiber.StatusBadRequest).JSON(res)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Session restores a cached session, re-resolving the identity against the
// authoritative store and returning a refreshed token.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	claims, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	res := h.svc.Resolve(c.Context(), claims)
	if !res.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(res)
	}
	return c.JSON(res)
}
