package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds list query parameters. Limit 0 means unbounded.
type Pagination struct {
	Limit int
}

// ParsePagination reads the limit query param with a sane default. The home
// spotlight view asks for limit=4; history views take everything.
func ParsePagination(c *fiber.Ctx) Pagination {
	limit := parseInt(c.Query("limit", "0"), 0)
	if limit < 0 {
		limit = 0
	}
	return Pagination{Limit: limit}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
