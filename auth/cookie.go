package auth

import (
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
)

// SessionCookieName is the name of the cookie carrying the session token.
const SessionCookieName = "token"

// sessionMaxAge is the cookie lifetime in seconds, matching the token's
// one-hour expiry.
const sessionMaxAge = 3600

// Cookie read failures. Both are handled as "no usable cookie" by the
// middleware; the distinction exists for logging.
var (
	// ErrNoSessionCookie means the request carried no session cookie.
	ErrNoSessionCookie = errors.New("session cookie missing")
	// ErrCookieSignature means the cookie's transport signature did not
	// verify; treated as if the cookie were absent.
	ErrCookieSignature = errors.New("session cookie transport signature invalid")
)

// SessionCookie sets, clears and reads the HMAC-signed session cookie. The
// transport signature protects the cookie independently of the signature
// inside the token it carries.
type SessionCookie struct {
	codec *securecookie.SecureCookie
}

// NewSessionCookie creates the signed-cookie facility. Only a hash key is
// configured: the cookie value is integrity-protected, not encrypted, same as
// the token it transports.
func NewSessionCookie(secret string) *SessionCookie {
	sc := securecookie.New([]byte(secret), nil)
	sc.MaxAge(sessionMaxAge)
	return &SessionCookie{codec: sc}
}

// Set signs the token value and attaches the session cookie to the response
// with the session attributes: httpOnly, SameSite=Lax, one-hour max age.
func (c *SessionCookie) Set(w http.ResponseWriter, token string) error {
	encoded, err := c.codec.Encode(SessionCookieName, token)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie on the response. Used on logout and on
// every token verification failure.
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read extracts the raw token value from the request, verifying the cookie's
// transport signature. A missing cookie yields ErrNoSessionCookie; a cookie
// that fails signature verification yields ErrCookieSignature.
func (c *SessionCookie) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", ErrNoSessionCookie
	}
	var token string
	if err := c.codec.Decode(SessionCookieName, cookie.Value, &token); err != nil {
		return "", ErrCookieSignature
	}
	return token, nil
}
