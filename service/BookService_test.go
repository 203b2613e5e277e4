package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"book-wishlist/dto"
	"book-wishlist/repository"
	"book-wishlist/testutil"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookService(t *testing.T, handler http.Handler) (*BookService, *Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session := NewSession(repository.NewInMemorySessionRepo(), nil)
	books, err := NewBookService(srv.URL, srv.Client(), session)
	require.NoError(t, err)
	return books, session
}

func TestNewBookService_RejectsEmptyURL(t *testing.T) {
	_, err := NewBookService("", nil, nil)
	assert.Error(t, err)
}

func TestBookService_Login(t *testing.T) {
	token := testutil.ValidToken(t, "u-1")
	books, session := newBookService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)

		var req dto.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: token})
	}))

	err := books.Login(context.Background(), &dto.LoginRequest{Email: "a@b.co", Password: "wrong"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.False(t, session.Authenticated())

	require.NoError(t, books.Login(context.Background(), &dto.LoginRequest{Email: "a@b.co", Password: "secret"}))
	assert.Equal(t, token, session.Token())
	userID, ok, err := session.UserID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u-1", userID)
}

func TestBookService_FailedLoginKeepsLiveSession(t *testing.T) {
	books, session := newBookService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	live := testutil.ValidToken(t, "u-1")
	require.NoError(t, session.Save(live))

	err := books.Login(context.Background(), &dto.LoginRequest{Email: "a@b.co", Password: "wrong"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	stored, err := session.repo.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, live, stored)
	assert.True(t, session.Authenticated())
}

func TestBookService_LoginReplacesExpiredSession(t *testing.T) {
	fresh := testutil.ValidToken(t, "u-2")
	var sentAuth string
	books, session := newBookService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sentAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: fresh})
	}))
	require.NoError(t, session.repo.Set(TokenKey, testutil.ExpiredToken(t, "u-1")))

	require.NoError(t, books.Login(context.Background(), &dto.LoginRequest{Email: "a@b.co", Password: "secret"}))
	assert.Empty(t, sentAuth)
	assert.Equal(t, fresh, session.Token())
}

func TestBookService_LoginRejectsUnreadableToken(t *testing.T) {
	books, session := newBookService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: "not-a-jwt"})
	}))

	err := books.Login(context.Background(), &dto.LoginRequest{Email: "a@b.co", Password: "x"})
	assert.Error(t, err)
	assert.Equal(t, "", session.Token())
}

func TestBookService_ValidatesBeforeSending(t *testing.T) {
	var calls int32
	books, _ := newBookService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))

	var verr validator.ValidationErrors
	err := books.Login(context.Background(), &dto.LoginRequest{Email: "nope"})
	assert.True(t, errors.As(err, &verr))

	_, err = books.CreateAccount(context.Background(), &dto.CreateAccountRequest{Name: "A", Email: "a@b.co", Password: "short"})
	assert.True(t, errors.As(err, &verr))

	_, err = books.CreateBook(context.Background(), &dto.CreateBookRequest{Title: "Dune"})
	assert.True(t, errors.As(err, &verr))

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestBookService_CreateAccountAndBook(t *testing.T) {
	books, _ := newBookService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":5,"name":"Ada","email":"ada@example.com"}`))
		case "/books":
			var req dto.CreateBookRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(dto.Book{ID: "b1", Title: req.Title, Author: req.Author})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	account, err := books.CreateAccount(context.Background(), &dto.CreateAccountRequest{Name: "Ada", Email: "ada@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, dto.UserID("5"), account.ID)

	book, err := books.CreateBook(context.Background(), &dto.CreateBookRequest{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.Equal(t, "b1", book.ID)
	assert.Equal(t, "Dune", book.Title)
}

func TestBookService_WishlistNeedsSession(t *testing.T) {
	books, _ := newBookService(t, http.NotFoundHandler())

	_, err := books.Wishlist(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = books.Recommended(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	err = books.AddToWishlist(context.Background(), &dto.WishlistAddRequest{BookID: "b1"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestBookService_WishlistAndRecommendations(t *testing.T) {
	var recommendedCalls int32
	books, session := newBookService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users/u 1/wishlist":
			_ = json.NewEncoder(w).Encode([]dto.Book{{ID: "b1", Title: "Dune"}})
		case r.Method == http.MethodPost && r.URL.Path == "/users/u 1/wishlist":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/users/u 1/recommended":
			atomic.AddInt32(&recommendedCalls, 1)
			_ = json.NewEncoder(w).Encode([]dto.Book{{ID: "b2", Title: "Hyperion"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	require.NoError(t, session.Save(testutil.ValidToken(t, "u 1")))
	ctx := context.Background()

	wishlist, err := books.Wishlist(ctx)
	require.NoError(t, err)
	require.Len(t, wishlist, 1)
	assert.Equal(t, "Dune", wishlist[0].Title)

	recs, err := books.Recommended(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	_, err = books.Recommended(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&recommendedCalls), "second call is served from cache")

	require.NoError(t, books.AddToWishlist(ctx, &dto.WishlistAddRequest{BookID: "b3"}))
	_, err = books.Recommended(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&recommendedCalls), "wishlist change invalidates cache")

	books.Reset()
	_, err = books.Recommended(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&recommendedCalls), "reset drops cache")
}

func TestBookService_ServerError(t *testing.T) {
	books, session := newBookService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database down", http.StatusInternalServerError)
	}))
	require.NoError(t, session.Save(testutil.ValidToken(t, "u")))

	_, err := books.Wishlist(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database down", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "Wishlist")
}
