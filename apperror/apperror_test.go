package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusAndCode(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
		code   string
	}{
		{"auth", NewAuthError("m", nil), http.StatusUnauthorized, "unauthenticated"},
		{"invalid credentials", NewInvalidCredentialsError(), http.StatusUnauthorized, "invalid_credentials"},
		{"conflict", NewConflictError("m", nil), http.StatusConflict, "already_exists"},
		{"stale session", NewStaleSessionError("m"), http.StatusConflict, "stale_session"},
		{"invalid cart ref", NewInvalidCartRefError("m", nil), http.StatusConflict, "invalid_cart_reference"},
		{"not found", NewNotFoundError("m", nil), http.StatusNotFound, "not_found"},
		{"cart not found", NewCartNotFoundError("m"), http.StatusNotFound, "cart_not_found"},
		{"article not in cart", NewArticleNotInCartError("m"), http.StatusNotFound, "article_not_in_cart"},
		{"bad request", NewBadRequestError("m", nil), http.StatusBadRequest, "bad_request"},
		{"unavailable", NewUnavailableError("m", nil), http.StatusServiceUnavailable, "store_unavailable"},
		{"database", NewDatabaseError("m", nil), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
			assert.Equal(t, tt.code, tt.err.Code())
			assert.Equal(t, tt.code, tt.err.ToResponse().Code)
		})
	}
}

func TestAppError_WrappingChain(t *testing.T) {
	underlying := errors.New("connection refused")
	appErr := NewDatabaseError("failed to look up user", underlying)

	// The wrapped store error survives fmt wrapping and errors.As.
	wrapped := fmt.Errorf("register: %w", appErr)
	assert.True(t, errors.Is(wrapped, underlying))

	got, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, DatabaseError, got.Type)

	// The client payload never contains the underlying detail.
	assert.NotContains(t, got.ToResponse().Error, "connection refused")
}

func TestFromError_NonAppError(t *testing.T) {
	_, ok := FromError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestIsNotFound_CoversAllNotFoundClasses(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("m", nil)))
	assert.True(t, IsNotFound(NewCartNotFoundError("m")))
	assert.True(t, IsNotFound(NewArticleNotInCartError("m")))
	assert.False(t, IsNotFound(NewStaleSessionError("m")))
	assert.False(t, IsNotFound(errors.New("plain")))
}
