// Package auth protects the API with a shared API key.
package auth

import "github.com/gofiber/fiber/v2"

// Header carries the API key on incoming requests.
const Header = "X-Api-Key"

// Config holds the auth middleware configuration.
type Config struct {
	// ApiKey is the expected key. An empty key disables authentication,
	// which suits local single-user setups.
	ApiKey string
}

// New creates the API key middleware.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		if c.Get(Header) != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
