package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// BusinessIDHeader carries the tenant scope for every request. It is
// populated upstream by the authentication layer, which is outside this
// service.
const BusinessIDHeader = "X-Business-ID"

const businessIDKey = "business_id"

// TenantMiddleware resolves the business scope from the request header
// and rejects requests without one
func TenantMiddleware(c *fiber.Ctx) error {
	raw := c.Get(BusinessIDHeader)
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput("missing " + BusinessIDHeader + " header"))
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(errInvalidInput("invalid " + BusinessIDHeader + " header"))
	}
	c.Locals(businessIDKey, uint(id))
	return c.Next()
}

// businessID returns the tenant scope set by TenantMiddleware
func businessID(c *fiber.Ctx) uint {
	id, _ := c.Locals(businessIDKey).(uint)
	return id
}
