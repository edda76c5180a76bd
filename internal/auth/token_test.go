package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	signer := NewSigner("test-secret", time.Minute)

	token, err := signer.Sign("42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewSigner("secret-a", time.Minute)
	other := NewSigner("secret-b", time.Minute)

	token, err := signer.Sign("42")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := NewSigner("test-secret", time.Minute)

	_, err := signer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	signer := NewSigner("test-secret", time.Nanosecond)

	token, err := signer.Sign("42")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokensAreUnique(t *testing.T) {
	signer := NewSigner("test-secret", time.Minute)

	a, err := signer.Sign("42")
	require.NoError(t, err)
	b, err := signer.Sign("42")
	require.NoError(t, err)

	// Each link gets its own jti, so two tokens for the same id differ.
	assert.NotEqual(t, a, b)
}

func TestDefaultTTL(t *testing.T) {
	signer := NewSigner("test-secret", 0)
	assert.Equal(t, DefaultLinkTTL, signer.TTL())

	signer = NewSigner("test-secret", time.Hour)
	assert.Equal(t, time.Hour, signer.TTL())
}
