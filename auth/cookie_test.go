package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestWithSessionCookie sets the cookie on a recorder and copies it onto a
// fresh request, the way a browser would replay it.
func requestWithSessionCookie(t *testing.T, cookie *SessionCookie, token string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, cookie.Set(rec, token))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/carrello/utente", nil)
	req.AddCookie(cookies[0])
	return req
}

func TestSessionCookie_RoundTrip(t *testing.T) {
	cookie := NewSessionCookie("cookie-secret")

	req := requestWithSessionCookie(t, cookie, "the-token-value")
	token, err := cookie.Read(req)
	require.NoError(t, err)
	assert.Equal(t, "the-token-value", token)
}

func TestSessionCookie_Attributes(t *testing.T) {
	cookie := NewSessionCookie("cookie-secret")

	rec := httptest.NewRecorder()
	require.NoError(t, cookie.Set(rec, "tok"))

	set := rec.Result().Cookies()[0]
	assert.Equal(t, SessionCookieName, set.Name)
	assert.True(t, set.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, set.SameSite)
	assert.Equal(t, sessionMaxAge, set.MaxAge)
	// The stored value is the signed envelope, not the raw token.
	assert.NotEqual(t, "tok", set.Value)
}

func TestSessionCookie_Missing(t *testing.T) {
	cookie := NewSessionCookie("cookie-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := cookie.Read(req)
	assert.ErrorIs(t, err, ErrNoSessionCookie)
}

func TestSessionCookie_TamperedValue(t *testing.T) {
	cookie := NewSessionCookie("cookie-secret")

	req := requestWithSessionCookie(t, cookie, "the-token-value")
	tampered := req.Cookies()[0]

	fresh := httptest.NewRequest(http.MethodGet, "/", nil)
	fresh.AddCookie(&http.Cookie{Name: tampered.Name, Value: tampered.Value + "x"})

	_, err := cookie.Read(fresh)
	assert.ErrorIs(t, err, ErrCookieSignature)
}

func TestSessionCookie_ForeignSecret(t *testing.T) {
	ours := NewSessionCookie("cookie-secret")
	theirs := NewSessionCookie("other-secret")

	req := requestWithSessionCookie(t, theirs, "the-token-value")
	_, err := ours.Read(req)
	assert.ErrorIs(t, err, ErrCookieSignature)
}

func TestSessionCookie_Clear(t *testing.T) {
	cookie := NewSessionCookie("cookie-secret")

	rec := httptest.NewRecorder()
	cookie.Clear(rec)

	cleared := rec.Result().Cookies()[0]
	assert.Equal(t, SessionCookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
