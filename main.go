package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	_ "book-wishlist/docs" // registers the swagger spec

	"book-wishlist/controller"
	"book-wishlist/middleware"
	"book-wishlist/repository"
	"book-wishlist/service"
	"book-wishlist/util"
)

// @title           Book Wishlist Client
// @version         1.0
// @description     Local application shell for the book wishlist service. Keeps the bearer session and guards every API call against token expiry.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host            localhost:4000
// @BasePath        /
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using system environment variables", slog.String("error", err.Error()))
	}

	cfg := util.LoadConfig()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	repo, err := openSessionRepository(cfg)
	if err != nil {
		slog.Error("failed to open session storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// app init is the first refresh point of the session
	session := service.NewSession(repo, nil)
	if err := session.Refresh(); err != nil {
		slog.Error("failed to read stored session", slog.String("error", err.Error()))
		os.Exit(1)
	}
	navigator := service.NewNavigator(session)

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: middleware.NewRequestGate(http.DefaultTransport, session, navigator),
	}

	books, err := service.NewBookService(cfg.APIBaseURL, httpClient, session)
	if err != nil {
		slog.Error("invalid API configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	navigator.OnReload(books.Reset)
	navigator.OnReload(httpClient.CloseIdleConnections)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service.StartExpiryWatcher(ctx, session, navigator, cfg.ExpiryCheckInterval)

	app := fiber.New(fiber.Config{AppName: "book-wishlist"})
	controller.SetupRoutes(app, session, books, navigator)

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			slog.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}()

	slog.Info("starting application shell",
		slog.String("port", cfg.Port),
		slog.String("api", cfg.APIBaseURL),
		slog.String("session_store", cfg.SessionStore),
		slog.Bool("authenticated", session.Authenticated()))

	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func openSessionRepository(cfg *util.Config) (repository.SessionRepository, error) {
	switch cfg.SessionStore {
	case "postgres":
		db, err := util.InitDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		return repository.NewSessionRepository(db), nil
	case "memory", "":
		return repository.NewInMemorySessionRepo(), nil
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q (want memory or postgres)", cfg.SessionStore)
	}
}
