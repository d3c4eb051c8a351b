package authstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/rauncher/rauncher/internal/auth"
)

// KeyringStore persists the credential in the OS-native secret storage.
// Uses macOS Keychain, Windows Credential Manager, or Linux Secret Service.
// The stored secret is the same JSON encoding FileStore uses.
type KeyringStore struct {
	service string
	user    string
}

// Compile-time check to ensure KeyringStore implements auth.Store
var _ auth.Store = (*KeyringStore)(nil)

// NewKeyringStore creates a KeyringStore using the given service and user
// identifiers.
func NewKeyringStore(service, user string) (*KeyringStore, error) {
	if service == "" {
		return nil, fmt.Errorf("service cannot be empty")
	}
	if user == "" {
		return nil, fmt.Errorf("user cannot be empty")
	}

	return &KeyringStore{
		service: service,
		user:    user,
	}, nil
}

// Save persists the token to the system keyring, overwriting any existing
// entry.
func (k *KeyringStore) Save(ctx context.Context, token *auth.Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding credential: %w", err)
	}

	return keyring.Set(k.service, k.user, string(data))
}

// Load returns the stored token, or (nil, nil) when the keyring holds no
// entry for this service/user pair.
func (k *KeyringStore) Load(ctx context.Context) (*auth.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	secret, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var token auth.Token
	if err := json.Unmarshal([]byte(secret), &token); err != nil {
		return nil, fmt.Errorf("decoding keyring credential for service %s, user %s: %w", k.service, k.user, err)
	}
	return &token, nil
}

// Delete removes the keyring entry. A missing entry is not an error.
func (k *KeyringStore) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := keyring.Delete(k.service, k.user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
