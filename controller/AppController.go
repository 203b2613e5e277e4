package controller

import (
	"book-wishlist/dto"
	"book-wishlist/service"

	"github.com/gofiber/fiber/v2"
)

// AppController serves the client-side routes as JSON views
type AppController struct {
	session *service.Session
	books   *service.BookService
	nav     *service.Navigator
}

func NewAppController(session *service.Session, books *service.BookService, nav *service.Navigator) *AppController {
	return &AppController{session: session, books: books, nav: nav}
}

// enter records the route visit; protected routes without a session land home
func (ac *AppController) enter(c *fiber.Ctx, path string) (bool, error) {
	landed, err := ac.nav.Navigate(path)
	if err != nil {
		return false, respond(c, ac.nav, err)
	}
	if landed != path {
		return false, c.Redirect(landed, fiber.StatusFound)
	}
	return true, nil
}

// Home godoc
// @Summary      Home view
// @Description  Reports whether a live session is stored and for which user.
// @Tags         views
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (ac *AppController) Home(c *fiber.Ctx) error {
	if err := ac.session.Refresh(); err != nil {
		return respond(c, ac.nav, err)
	}
	if ok, err := ac.enter(c, "/"); !ok {
		return err
	}
	return c.JSON(fiber.Map{"route": "home", "session": ac.session.View()})
}

// About godoc
// @Summary      About view
// @Tags         views
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /about [get]
func (ac *AppController) About(c *fiber.Ctx) error {
	if ok, err := ac.enter(c, "/about"); !ok {
		return err
	}
	return c.JSON(fiber.Map{
		"route":       "about",
		"name":        "Book Wishlist",
		"description": "Keep a wishlist of books and get recommendations based on it.",
	})
}

// LoginForm godoc
// @Summary      Login view
// @Tags         views
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /login [get]
func (ac *AppController) LoginForm(c *fiber.Ctx) error {
	if ok, err := ac.enter(c, "/login"); !ok {
		return err
	}
	return c.JSON(fiber.Map{"route": "login", "fields": []string{"email", "password"}})
}

// CreateAccountForm godoc
// @Summary      Create account view
// @Tags         views
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /create_account [get]
func (ac *AppController) CreateAccountForm(c *fiber.Ctx) error {
	if ok, err := ac.enter(c, "/create_account"); !ok {
		return err
	}
	return c.JSON(fiber.Map{"route": "create_account", "fields": []string{"name", "email", "password"}})
}

// CreateBookForm godoc
// @Summary      Create book view
// @Tags         views
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Success      302
// @Router       /create_book [get]
func (ac *AppController) CreateBookForm(c *fiber.Ctx) error {
	if ok, err := ac.enter(c, "/create_book"); !ok {
		return err
	}
	return c.JSON(fiber.Map{"route": "create_book", "fields": []string{"title", "author", "genre", "description"}})
}

// CreateBook godoc
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload body dto.CreateBookRequest true "Book payload"
// @Success      201  {object}  dto.Book
// @Success      302
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /create_book [post]
func (ac *AppController) CreateBook(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}

	book, err := ac.books.CreateBook(c.UserContext(), &req)
	if err != nil {
		return respond(c, ac.nav, err)
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}

// Wishlist godoc
// @Summary      Wishlist view
// @Tags         books
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Success      302
// @Failure      502  {object}  map[string]string
// @Router       /wishlist [get]
func (ac *AppController) Wishlist(c *fiber.Ctx) error {
	if ok, err := ac.enter(c, "/wishlist"); !ok {
		return err
	}
	books, err := ac.books.Wishlist(c.UserContext())
	if err != nil {
		return respond(c, ac.nav, err)
	}
	return c.JSON(fiber.Map{"route": "wishlist", "books": nonNil(books)})
}

// AddToWishlist godoc
// @Summary      Add a book to the wishlist
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload body dto.WishlistAddRequest true "Wishlist payload"
// @Success      204
// @Success      302
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /wishlist [post]
func (ac *AppController) AddToWishlist(c *fiber.Ctx) error {
	var req dto.WishlistAddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := ac.books.AddToWishlist(c.UserContext(), &req); err != nil {
		return respond(c, ac.nav, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recommended godoc
// @Summary      Recommendations view
// @Tags         books
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Success      302
// @Failure      502  {object}  map[string]string
// @Router       /recommended [get]
func (ac *AppController) Recommended(c *fiber.Ctx) error {
	if ok, err := ac.enter(c, "/recommended"); !ok {
		return err
	}
	books, err := ac.books.Recommended(c.UserContext())
	if err != nil {
		return respond(c, ac.nav, err)
	}
	return c.JSON(fiber.Map{"route": "recommended", "books": nonNil(books)})
}

func nonNil(books []dto.Book) []dto.Book {
	if books == nil {
		return []dto.Book{}
	}
	return books
}
