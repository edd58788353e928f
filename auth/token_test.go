package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Issue("ann", "64a1f0c2b3d4e5f60718293a")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ann", claims.Username)
	assert.Equal(t, "64a1f0c2b3d4e5f60718293a", claims.Cart)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenCodec_SignatureFlippedByte(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Issue("ann", "")
	require.NoError(t, err)

	// Flip the first byte of the signature segment.
	dot := strings.LastIndexByte(token, '.')
	require.Positive(t, dot)
	sig := []byte(token[dot+1:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	flipped := token[:dot+1] + string(sig)

	_, err = codec.Verify(flipped)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec("one-secret", time.Hour)
	verifier := NewTokenCodec("another-secret", time.Hour)

	token, err := issuer.Issue("ann", "")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestTokenCodec_Expired(t *testing.T) {
	// A negative ttl issues a token that is already past its expiry.
	codec := NewTokenCodec("test-secret", -time.Minute)

	token, err := codec.Issue("ann", "")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b", strings.Repeat(".", 5)} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestTokenCodec_MissingUsernameClaim(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Issue("", "")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
