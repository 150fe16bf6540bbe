package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Vachangowdas/Agrifair1/internal/config"
	"github.com/Vachangowdas/Agrifair1/internal/utils"
)

const sessionContextKey = "currentSession"

// AuthMiddleware validates session JWTs and loads the session claims into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(sessionContextKey, claims)
		return c.Next()
	}
}

// GetCurrentSession extracts the authenticated session claims from context.
func GetCurrentSession(c *fiber.Ctx) (*utils.SessionClaims, bool) {
	value := c.Locals(sessionContextKey)
	if value == nil {
		return nil, false
	}

	if claims, ok := value.(*utils.SessionClaims); ok {
		return claims, true
	}

	return nil, false
}
