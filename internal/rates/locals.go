package rates

import "github.com/gofiber/fiber/v2"

// localsKey is unexported so nothing outside this package can collide
// with the entry; the rates travel per-request, there is no global
// registry to forget to clean up.
type localsKey struct{}

// Middleware installs the composite into request locals. Handlers that
// opt in read it back through FromCtx and must handle absence.
func Middleware(all *AllRates) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localsKey{}, all)
		return c.Next()
	}
}

// FromCtx reports absence instead of panicking: a route mounted without
// the middleware simply sees no rates.
func FromCtx(c *fiber.Ctx) (*AllRates, bool) {
	all, ok := c.Locals(localsKey{}).(*AllRates)
	return all, ok
}
