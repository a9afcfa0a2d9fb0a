package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/excusedex/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored for an entry
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry addresses one secret in the OS keyring.
type Entry struct {
	Service string
	User    string
}

// Connection holds the PostgreSQL connection string.
var Connection = Entry{Service: constants.AppName, User: constants.DefaultKeyringUser}

// Get reads the secret. Returns ErrNotFound if nothing is stored.
func (e Entry) Get() (string, error) {
	secret, err := keyring.Get(e.Service, e.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores the secret, replacing any previous value.
func (e Entry) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(e.Service, e.User, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret.
func (e Entry) Delete() error {
	if err := keyring.Delete(e.Service, e.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports, best effort, whether the OS keyring answers.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
