package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
	"github.com/IllyaHavrulyk/DevConnector/pkg/security/jwt"
)

const maxPageSize = 200

// parseLimitOffset reads optional ?limit=&offset=. A missing or invalid limit
// yields defLimit; zero means "everything".
func parseLimitOffset(c *fiber.Ctx, defLimit int) (limit, offset int) {
	limit = defLimit
	offset = 0
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			limit = n
		}
	}
	if v := strings.TrimSpace(c.Query("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// currentUser returns the id placed in the context by the auth middleware.
func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	uid, ok := jwt.UserID(c)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("Token is not valid")
	}
	return uid, nil
}
