package service

import (
	"context"
	"log/slog"
	"time"
)

// StartExpiryWatcher logs out as soon as the stored token expires, without
// waiting for the next outbound request. It stops when ctx is cancelled.
func StartExpiryWatcher(ctx context.Context, session *Session, nav *Navigator, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				checkExpiry(session, nav)
			}
		}
	}()
}

func checkExpiry(session *Session, nav *Navigator) {
	if err := session.Refresh(); err != nil {
		slog.Error("expiry check: refresh failed", slog.String("error", err.Error()))
		return
	}

	_, claims, err := session.Current()
	switch {
	case err != nil:
		slog.Warn("expiry check: stored token is malformed, logging out", slog.String("error", err.Error()))
	case claims == nil:
		return
	case !session.IsExpired(claims):
		return
	default:
		slog.Info("expiry check: session expired, logging out", slog.String("user_id", claims.UserID.String()))
	}

	if err := nav.Logout(); err != nil {
		slog.Error("expiry check: logout failed", slog.String("error", err.Error()))
	}
}
