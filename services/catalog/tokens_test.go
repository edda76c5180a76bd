package catalog

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenStore(t *testing.T, payload string) *TokenStore {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "api_tokens.json", []byte(payload), 0o644))
	store, err := NewTokenStore(fs, "api_tokens.json")
	require.NoError(t, err)
	return store
}

func TestTokenStoreBareArray(t *testing.T) {
	store := newTokenStore(t, `["abc123", "def456", ""]`)

	assert.True(t, store.Valid("abc123"))
	assert.True(t, store.Valid("def456"))
	assert.False(t, store.Valid("ghi789"))
	assert.False(t, store.Valid(""))
}

func TestTokenStoreWrappedObject(t *testing.T) {
	store := newTokenStore(t, `{"tokens": ["abc123"]}`)
	assert.True(t, store.Valid("abc123"))
	assert.False(t, store.Valid("tokens"))
}

func TestTokenStoreEmptyList(t *testing.T) {
	store := newTokenStore(t, `[]`)
	assert.False(t, store.Valid("anything"))
}

func TestTokenStoreMissingFile(t *testing.T) {
	_, err := NewTokenStore(afero.NewMemMapFs(), "nope.json")
	assert.Error(t, err)
}

func TestTokenStoreMalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "api_tokens.json", []byte("not json"), 0o644))
	_, err := NewTokenStore(fs, "api_tokens.json")
	assert.Error(t, err)
}
