package controller

import (
	"book-wishlist/middleware"
	"book-wishlist/service"

	"github.com/gofiber/fiber/v2"
	swag "github.com/gofiber/swagger"
)

// SetupRoutes wires the application shell onto app
func SetupRoutes(app *fiber.App, session *service.Session, books *service.BookService, nav *service.Navigator) {
	app.Use(middleware.TimerMetrics)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/swagger/*", swag.HandlerDefault)

	appController := NewAppController(session, books, nav)
	sessionController := NewSessionController(books, nav)

	app.Get("/", appController.Home).Name("home")
	app.Get("/about", appController.About).Name("about")

	app.Get("/login", appController.LoginForm).Name("login")
	app.Post("/login", middleware.LoginLimiter(), sessionController.Login)
	app.Get("/create_account", appController.CreateAccountForm).Name("create_account")
	app.Post("/create_account", sessionController.CreateAccount)
	app.Post("/logout", sessionController.Logout)

	requireSession := middleware.RequireSession(nav)
	app.Get("/create_book", requireSession, appController.CreateBookForm).Name("create_book")
	app.Post("/create_book", requireSession, appController.CreateBook)
	app.Get("/wishlist", requireSession, appController.Wishlist).Name("wishlist")
	app.Post("/wishlist", requireSession, appController.AddToWishlist)
	app.Get("/recommended", requireSession, appController.Recommended).Name("recommended")
}
