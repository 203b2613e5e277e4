package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"book-wishlist/router"
	"book-wishlist/service"
	"book-wishlist/util"

	"github.com/gofiber/fiber/v2"
)

// respond maps service errors onto shell responses. Anything that means
// "no usable session" ends with a redirect to the home route.
func respond(c *fiber.Ctx, nav *service.Navigator, err error) error {
	var apiErr *service.APIError

	switch {
	case errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, util.ErrMalformedToken):
		return c.Redirect(router.Home, fiber.StatusFound)
	case util.ValidationMessages(err) != nil:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": util.ValidationMessages(err),
		})
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusUnauthorized {
			// the backend no longer accepts our token
			if logoutErr := nav.Logout(); logoutErr != nil {
				slog.Error("logout after 401 failed", slog.String("error", logoutErr.Error()))
			}
			return c.Redirect(router.Home, fiber.StatusFound)
		}
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Message})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": apiErr.Error()})
	default:
		slog.Error("request failed", slog.String("path", c.Path()), slog.String("error", err.Error()))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
}
