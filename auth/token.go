package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification reject reasons. The middleware treats all three identically
// (unauthenticated, cookie cleared) but they stay distinguishable with
// errors.Is for logging and tests.
var (
	// ErrTokenMalformed means the token is not a parseable JWT.
	ErrTokenMalformed = errors.New("session token malformed")
	// ErrTokenSignatureInvalid means the token was tampered with or signed
	// with a different secret.
	ErrTokenSignatureInvalid = errors.New("session token signature invalid")
	// ErrTokenExpired means the token's lifetime has passed.
	ErrTokenExpired = errors.New("session token expired")
)

// Claims is the session token payload: the username plus the cart reference
// denormalized from the identity at issuance time. The claim is signed, not
// encrypted; it must never carry the credential hash or any other secret.
type Claims struct {
	Username string `json:"username"`
	Cart     string `json:"carrello,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed, time-limited session tokens. It owns
// no persistent state: it is a pure produce/verify pair parameterized by the
// process-wide signing secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec signing with secret and issuing tokens valid
// for ttl.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed HS256 token embedding the given identity claim with
// an expiry of the codec's ttl from now.
func (c *TokenCodec) Issue(username, cartRef string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Cart:     cartRef,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "mercato",
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry, returning the embedded claim
// on success. Failures map onto exactly one of ErrTokenMalformed,
// ErrTokenSignatureInvalid or ErrTokenExpired.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
		default:
			// Unexpected algorithm, not-yet-valid, and similar parse
			// failures all count as signature-level rejection.
			return nil, fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
		}
	}

	if !token.Valid {
		return nil, ErrTokenSignatureInvalid
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: username claim missing", ErrTokenMalformed)
	}
	return claims, nil
}
