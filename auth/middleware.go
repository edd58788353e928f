package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/user/mercato-go/apperror"
)

// SessionMiddleware protects a route group: it extracts the session token
// from the signed cookie, verifies it with the codec, and attaches the
// decoded claims to the request context. Any failure rejects the request as
// unauthenticated.
//
// A cookie that fails its transport signature is treated exactly like an
// absent cookie; the codec never sees it. When the codec itself rejects the
// token (malformed, bad signature, expired) the cookie is cleared on the
// response so the client stops replaying it. Clearing is best-effort and does
// not change the rejection returned to the client.
func SessionMiddleware(cookie *SessionCookie, codec *TokenCodec) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cookie.Read(r)
			if err != nil {
				if errors.Is(err, ErrCookieSignature) {
					log.Printf("Rejected request %s %s: %v", r.Method, r.URL.Path, err)
				}
				WriteError(w, r, apperror.NewAuthError("missing session token", err))
				return
			}

			claims, err := codec.Verify(token)
			if err != nil {
				// The reject reason is logged; the client only learns
				// that it is unauthenticated.
				log.Printf("Rejected request %s %s: %v", r.Method, r.URL.Path, err)
				cookie.Clear(w)
				WriteError(w, r, apperror.NewAuthError("invalid or expired session token", err))
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
