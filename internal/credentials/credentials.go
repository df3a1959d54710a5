// Package credentials stores the OAuth token in the OS keyring, falling
// back to a 0600 file in the config directory when no keyring is available.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"

	"remind/internal/config"
)

const (
	keyringService = "remind"
	keyringAccount = "oauth-token"
)

// ErrNoToken means no stored token was found in either the keyring or the
// fallback file.
var ErrNoToken = errors.New("not logged in")

// Keyring is the subset of the OS keyring used here. The package variable
// indirection lets tests swap in an in-memory keyring.
type Keyring interface {
	Set(service, account, password string) error
	Get(service, account string) (string, error)
	Delete(service, account string) error
}

type systemKeyring struct{}

func (systemKeyring) Set(service, account, password string) error {
	return keyring.Set(service, account, password)
}

func (systemKeyring) Get(service, account string) (string, error) {
	return keyring.Get(service, account)
}

func (systemKeyring) Delete(service, account string) error {
	return keyring.Delete(service, account)
}

// Ring is the keyring in use. Replaced by tests.
var Ring Keyring = systemKeyring{}

// SaveToken stores the token, preferring the keyring. When the keyring is
// unavailable the token goes to the fallback file instead.
func SaveToken(cfg *config.Config, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	if err := Ring.Set(keyringService, keyringAccount, string(data)); err == nil {
		return nil
	}
	if err := cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(cfg.TokenPath(), data, 0600)
}

// LoadToken reads the stored token from the keyring, then from the fallback
// file.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	if raw, err := Ring.Get(keyringService, keyringAccount); err == nil {
		return parseToken([]byte(raw))
	}
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, err
	}
	return parseToken(data)
}

// HasToken reports whether any stored token exists.
func HasToken(cfg *config.Config) bool {
	if _, err := Ring.Get(keyringService, keyringAccount); err == nil {
		return true
	}
	_, err := os.Stat(cfg.TokenPath())
	return err == nil
}

// ClearToken removes the stored token from both locations.
func ClearToken(cfg *config.Config) error {
	_ = Ring.Delete(keyringService, keyringAccount)
	if err := os.Remove(cfg.TokenPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func parseToken(data []byte) (*oauth2.Token, error) {
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid stored token: %w", err)
	}
	return &token, nil
}
