package middleware

import (
	"book-wishlist/router"
	"book-wishlist/service"

	"github.com/gofiber/fiber/v2"
)

// RequireSession sends unauthenticated visitors of protected routes back home
func RequireSession(nav *service.Navigator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !nav.RequireAuth() {
			return c.Redirect(router.Home, fiber.StatusFound)
		}
		return c.Next()
	}
}
