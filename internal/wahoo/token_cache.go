package wahoo

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// TokenCache persists the OAuth token pair between sessions so the athlete
// does not have to re-authorize every run.
type TokenCache struct {
	path   string
	logger *log.Logger
}

// NewTokenCache creates a cache backed by the file at path.
func NewTokenCache(path string, logger *log.Logger) *TokenCache {
	if logger == nil {
		panic("TokenCache: logger cannot be nil")
	}
	return &TokenCache{path: path, logger: logger}
}

// Load returns the cached token and whether one was present. A missing or
// unreadable file is not an error, just an empty cache.
func (c *TokenCache) Load() (Token, bool) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		c.logger.Printf("TokenCache: no cached token at %s", c.path)
		return Token{}, false
	}
	var token Token
	if err := json.Unmarshal(raw, &token); err != nil {
		c.logger.Printf("TokenCache: %s failed to parse: %v", c.path, err)
		return Token{}, false
	}
	return token, token.AccessToken != ""
}

// Save writes the token pair to disk, readable only by the owner.
func (c *TokenCache) Save(token Token) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("create token cache dir: %w", err)
	}
	raw, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(c.path, raw, 0600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	c.logger.Printf("TokenCache: saved token to %s", c.path)
	return nil
}

// Clear removes any cached token.
func (c *TokenCache) Clear() error {
	err := os.Remove(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
