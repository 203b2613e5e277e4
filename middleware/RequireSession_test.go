package middleware

import (
	"net/http/httptest"
	"testing"

	"book-wishlist/repository"
	"book-wishlist/router"
	"book-wishlist/service"
	"book-wishlist/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(t *testing.T) (*fiber.App, repository.SessionRepository) {
	t.Helper()
	repo := repository.NewInMemorySessionRepo()
	nav := service.NewNavigator(service.NewSession(repo, nil))

	app := fiber.New()
	app.Get("/wishlist", RequireSession(nav), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, repo
}

func TestRequireSession(t *testing.T) {
	cases := []struct {
		name       string
		token      func(t *testing.T) string
		wantStatus int
	}{
		{"no token", func(*testing.T) string { return "" }, fiber.StatusFound},
		{"expired token", func(t *testing.T) string { return testutil.ExpiredToken(t, "u") }, fiber.StatusFound},
		{"malformed token", func(*testing.T) string { return "garbage" }, fiber.StatusFound},
		{"live token", func(t *testing.T) string { return testutil.ValidToken(t, "u") }, fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, repo := newProtectedApp(t)
			if token := tc.token(t); token != "" {
				require.NoError(t, repo.Set(service.TokenKey, token))
			}

			resp, err := app.Test(httptest.NewRequest("GET", "/wishlist", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantStatus == fiber.StatusFound {
				assert.Equal(t, router.Home, resp.Header.Get("Location"))
			}
		})
	}
}

func TestLoginLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginLimiter(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
