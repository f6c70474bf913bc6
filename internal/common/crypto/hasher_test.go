package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	for _, password := range []string{"foobar", "correct horse battery", strings.Repeat("p", 40), "пароль123"} {
		digest, err := h.Hash(password)
		require.NoError(t, err)
		assert.NotEmpty(t, digest)
		assert.NotEqual(t, password, digest)

		ok, err := h.Verify(password, digest)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify", password)

		ok, err = h.Verify(password+"x", digest)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestBcryptHasher_SaltsEveryDigest(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("foobar")
	require.NoError(t, err)
	second, err := h.Hash("foobar")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := newTestHasher(t)

	for _, digest := range []string{"", "not-a-digest", "$2a$04$short"} {
		ok, err := h.Verify("foobar", digest)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrMalformedDigest), "digest %q: got %v", digest, err)
	}
}

func TestBcryptHasher_RejectsOversizedInput(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewBcryptHasher_InvalidCost(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.ErrorIs(t, err, ErrInvalidHashCost)

	_, err = NewBcryptHasher(1)
	assert.ErrorIs(t, err, ErrInvalidHashCost)
}

func TestUUIDGenerator_NewID(t *testing.T) {
	g := NewUUIDGenerator()

	a, err := g.NewID()
	require.NoError(t, err)
	b, err := g.NewID()
	require.NoError(t, err)

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
