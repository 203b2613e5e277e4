package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// TimerMetrics middleware tracks request duration and logs it
func TimerMetrics(c *fiber.Ctx) error {
	startTime := time.Now()

	err := c.Next()

	duration := time.Since(startTime)

	attrs := []any{
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Int("status", c.Response().StatusCode()),
		slog.Duration("duration", duration),
	}
	if route := c.Route().Name; route != "" {
		attrs = append(attrs, slog.String("route", route))
	}

	slog.Info("request", attrs...)

	return err
}
