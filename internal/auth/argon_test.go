package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_TooLongRejected(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "same password must hash differently")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "pw123")
	require.NoError(t, err)
	assert.True(t, ok)

	// Mismatch is (false, nil), not an error.
	ok, err = VerifyPassword(hash, "pw124")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "pw123")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPassword("$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "pw123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_OverlongCandidate(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, strings.Repeat("a", maxPasswordLength+1))
	require.NoError(t, err)
	assert.False(t, ok)
}
