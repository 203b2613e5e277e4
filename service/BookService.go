package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"book-wishlist/dto"
	"book-wishlist/util"
)

// APIError describes a non-2xx answer from the backend
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.Status, e.Message)
}

// BookService talks to the book wishlist backend. Its HTTP client is expected
// to carry the request gate, which attaches the bearer token.
type BookService struct {
	baseURL    *url.URL
	httpClient *http.Client
	session    *Session

	mu          sync.Mutex
	recommended map[string][]dto.Book // by user id
}

func NewBookService(baseURL string, httpClient *http.Client, session *Session) (*BookService, error) {
	if baseURL == "" {
		return nil, errors.New("api base url is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BookService{
		baseURL:     parsed,
		httpClient:  httpClient,
		session:     session,
		recommended: make(map[string][]dto.Book),
	}, nil
}

// Login exchanges credentials for a token and stores it in the session
func (s *BookService) Login(ctx context.Context, req *dto.LoginRequest) error {
	const op = "Login"
	if err := util.ValidateStruct(req); err != nil {
		return err
	}

	// an expired or unreadable token would make the gate refuse the login call;
	// a live one stays until the backend issues its replacement
	if err := s.session.Refresh(); err != nil {
		return err
	}
	if s.session.Token() != "" && !s.session.Authenticated() {
		if err := s.session.Clear(); err != nil {
			return err
		}
	}

	var res dto.LoginResponse
	if err := s.doJSON(ctx, op, http.MethodPost, "/login", req, &res); err != nil {
		return err
	}
	if strings.TrimSpace(res.Token) == "" {
		return &APIError{Op: op, Status: http.StatusOK, Message: "empty token"}
	}
	return s.session.Save(res.Token)
}

func (s *BookService) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	var res dto.AccountResponse
	if err := s.doJSON(ctx, "CreateAccount", http.MethodPost, "/users", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *BookService) CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*dto.Book, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	var res dto.Book
	if err := s.doJSON(ctx, "CreateBook", http.MethodPost, "/books", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Wishlist lists the books the current user wants
func (s *BookService) Wishlist(ctx context.Context) ([]dto.Book, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	var books []dto.Book
	if err := s.doJSON(ctx, "Wishlist", http.MethodGet, "/users/"+url.PathEscape(userID)+"/wishlist", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookService) AddToWishlist(ctx context.Context, req *dto.WishlistAddRequest) error {
	if err := util.ValidateStruct(req); err != nil {
		return err
	}
	userID, err := s.currentUser()
	if err != nil {
		return err
	}
	if err := s.doJSON(ctx, "AddToWishlist", http.MethodPost, "/users/"+url.PathEscape(userID)+"/wishlist", req, nil); err != nil {
		return err
	}

	// the wishlist drives recommendations
	s.forget(userID)
	return nil
}

// Recommended returns recommendations for the current user, cached until
// the wishlist changes or the application reloads
func (s *BookService) Recommended(ctx context.Context) ([]dto.Book, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	cached, ok := s.recommended[userID]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	var books []dto.Book
	if err := s.doJSON(ctx, "Recommended", http.MethodGet, "/users/"+url.PathEscape(userID)+"/recommended", nil, &books); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.recommended[userID] = books
	s.mu.Unlock()
	return books, nil
}

// Reset drops every cached response
func (s *BookService) Reset() {
	s.mu.Lock()
	s.recommended = make(map[string][]dto.Book)
	s.mu.Unlock()
}

func (s *BookService) forget(userID string) {
	s.mu.Lock()
	delete(s.recommended, userID)
	s.mu.Unlock()
}

func (s *BookService) currentUser() (string, error) {
	if err := s.session.Refresh(); err != nil {
		return "", err
	}
	userID, ok, err := s.session.UserID()
	if err != nil {
		return "", err
	}
	if !ok || userID == "" {
		return "", ErrNotAuthenticated
	}
	return userID, nil
}

func (s *BookService) doJSON(ctx context.Context, op, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = buf
	}

	// path is already escaped
	full := s.baseURL.JoinPath(strings.TrimPrefix(path, "/"))

	req, err := http.NewRequestWithContext(ctx, method, full.String(), body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// readErrorMessage pulls {"error": "..."} out of a failed response, falling back to the raw body
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
