package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"book-wishlist/service"

	"github.com/google/uuid"
)

// RequestIDHeader is attached to every outbound API call
const RequestIDHeader = "X-Request-ID"

// RequestGate is the pre-flight hook on every outbound API call. It reloads the
// session, refuses to send an expired (or undecodable) token and logs out instead,
// and otherwise forwards a copy of the request carrying the bearer token.
type RequestGate struct {
	next      http.RoundTripper
	session   *service.Session
	navigator *service.Navigator
}

func NewRequestGate(next http.RoundTripper, session *service.Session, navigator *service.Navigator) *RequestGate {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RequestGate{next: next, session: session, navigator: navigator}
}

func (g *RequestGate) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := g.session.Refresh(); err != nil {
		closeBody(req)
		return nil, err
	}

	token, claims, err := g.session.Current()
	if err != nil {
		closeBody(req)
		slog.Warn("request gate: stored token is malformed",
			slog.String("method", req.Method), slog.String("url", req.URL.Redacted()), slog.String("error", err.Error()))
		g.logout()
		return nil, err
	}

	if claims != nil && g.session.IsExpired(claims) {
		closeBody(req)
		slog.Info("request gate: session expired, rejecting request",
			slog.String("method", req.Method), slog.String("url", req.URL.Redacted()), slog.String("user_id", claims.UserID.String()))
		g.logout()
		return nil, fmt.Errorf("%w: %s %s", service.ErrSessionExpired, req.Method, req.URL.Path)
	}

	out := req.Clone(req.Context())
	if out.Header.Get(RequestIDHeader) == "" {
		out.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}

	return g.next.RoundTrip(out)
}

func (g *RequestGate) logout() {
	if err := g.navigator.Logout(); err != nil {
		slog.Error("request gate: logout failed", slog.String("error", err.Error()))
	}
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		req.Body.Close()
	}
}
