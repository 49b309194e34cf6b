// Package keyring stores the session token and the AI API key in the OS
// keyring so neither ever lands in a config file.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/cohortapp/cohort-cli/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the key.
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value string) error {
	if value == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// GetSessionToken retrieves the persisted auth session token.
func GetSessionToken() (string, error) {
	return get(constants.DefaultKeyringSession)
}

// SetSessionToken persists the auth session token.
func SetSessionToken(token string) error {
	return set(constants.DefaultKeyringSession, token)
}

// DeleteSessionToken removes the persisted session, logging the user out on
// the next start.
func DeleteSessionToken() error {
	return del(constants.DefaultKeyringSession)
}

// GetAIKey retrieves the API key for motto/tip generation.
func GetAIKey() (string, error) {
	return get(constants.DefaultKeyringAIKey)
}

// SetAIKey stores the API key for motto/tip generation.
func SetAIKey(key string) error {
	return set(constants.DefaultKeyringAIKey, key)
}

// IsAvailable checks whether the OS keyring can be used at all. Best-effort:
// a read that fails with anything other than not-found means unavailable.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
