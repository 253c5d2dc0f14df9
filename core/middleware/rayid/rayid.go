// Package rayid assigns a unique request ID (RayID) to every request.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the RayID back to the client.
const Header = "X-Ray-Id"

// New creates the RayID middleware. An incoming X-Ray-Id is honored so
// upstream proxies can correlate; otherwise a fresh UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
