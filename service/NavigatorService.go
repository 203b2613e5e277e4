package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"book-wishlist/router"
)

var ErrUnknownRoute = errors.New("unknown route")

// Navigator tracks the current route and performs logout
type Navigator struct {
	session *Session

	mu      sync.Mutex
	current string
	reloads []func()
}

func NewNavigator(session *Session) *Navigator {
	return &Navigator{session: session, current: router.Home}
}

// Current returns the active route path
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate moves to a registered route. Protected routes without a live session land on home instead.
func (n *Navigator) Navigate(path string) (string, error) {
	r, ok := router.Lookup(path)
	if !ok {
		return n.Current(), fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}
	if r.Protected && !n.RequireAuth() {
		return router.Home, nil
	}

	n.mu.Lock()
	n.current = r.Path
	n.mu.Unlock()
	return r.Path, nil
}

// RequireAuth reloads the session; when it is not authenticated it routes home
// and reloads application state
func (n *Navigator) RequireAuth() bool {
	if err := n.session.Refresh(); err != nil {
		slog.Error("navigation: session refresh failed", slog.String("error", err.Error()))
	} else if n.session.Authenticated() {
		return true
	}
	n.goHomeAndReload()
	return false
}

// OnReload registers a hook that drops in-memory state on logout
func (n *Navigator) OnReload(hook func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reloads = append(n.reloads, hook)
}

// Logout clears the stored token, routes home and reloads application state.
// Calling it without a session is harmless; a storage error is returned after
// the navigation and reload have still happened.
func (n *Navigator) Logout() error {
	clearErr := n.session.Clear()
	if clearErr != nil {
		slog.Error("logout: failed to clear session storage", slog.String("error", clearErr.Error()))
	}

	n.goHomeAndReload()

	slog.Info("logged out", slog.String("route", router.Home))
	return clearErr
}

func (n *Navigator) goHomeAndReload() {
	n.mu.Lock()
	n.current = router.Home
	hooks := make([]func(), len(n.reloads))
	copy(hooks, n.reloads)
	n.mu.Unlock()

	for _, reload := range hooks {
		reload()
	}
}
