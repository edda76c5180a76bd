package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/spf13/afero"
)

// TokenStore validates API access tokens against a static JSON file.
// The file is either a bare array of token strings or an object with a
// "tokens" array.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewTokenStore loads the token file. A missing or empty file yields a
// store that rejects everything.
func NewTokenStore(fs afero.Fs, path string) (*TokenStore, error) {
	store := &TokenStore{tokens: make(map[string]struct{})}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		var wrapped struct {
			Tokens []string `json:"tokens"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode token file: %w", err)
		}
		list = wrapped.Tokens
	}

	for _, token := range list {
		if token != "" {
			store.tokens[token] = struct{}{}
		}
	}

	log.Printf("[catalog] loaded %d api tokens", len(store.tokens))
	return store, nil
}

// Valid reports whether the token grants API access.
func (t *TokenStore) Valid(token string) bool {
	if token == "" {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.tokens[token]
	return ok
}
