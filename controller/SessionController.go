package controller

import (
	"errors"

	"book-wishlist/dto"
	"book-wishlist/router"
	"book-wishlist/service"
	"book-wishlist/util"

	"github.com/gofiber/fiber/v2"
)

// SessionController handles login, account creation and logout
type SessionController struct {
	books *service.BookService
	nav   *service.Navigator
}

func NewSessionController(books *service.BookService, nav *service.Navigator) *SessionController {
	return &SessionController{books: books, nav: nav}
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges credentials for a bearer token and stores it under the user-token key.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        payload body dto.LoginRequest true "Login payload"
// @Success      302
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /login [post]
func (sc *SessionController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}

	if err := sc.books.Login(c.UserContext(), &req); err != nil {
		if errors.Is(err, util.ErrMalformedToken) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "backend issued an unreadable token"})
		}
		var apiErr *service.APIError
		if errors.As(err, &apiErr) && apiErr.Status == fiber.StatusUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}
		return respond(c, sc.nav, err)
	}

	if _, err := sc.nav.Navigate(router.Home); err != nil {
		return respond(c, sc.nav, err)
	}
	return c.Redirect(router.Home, fiber.StatusFound)
}

// CreateAccount godoc
// @Summary      Create an account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        payload body dto.CreateAccountRequest true "Account payload"
// @Success      201  {object}  dto.AccountResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /create_account [post]
func (sc *SessionController) CreateAccount(c *fiber.Ctx) error {
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}

	res, err := sc.books.CreateAccount(c.UserContext(), &req)
	if err != nil {
		return respond(c, sc.nav, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the stored token, routes home and reloads application state. Safe to call without a session.
// @Tags         session
// @Success      302
// @Failure      500  {object}  map[string]string
// @Router       /logout [post]
func (sc *SessionController) Logout(c *fiber.Ctx) error {
	if err := sc.nav.Logout(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Redirect(router.Home, fiber.StatusFound)
}
