package auth

import (
	"context"
	"errors"
)

// ErrNotAuthenticated reports that no usable credential is held. It is a
// logical state, not a system fault: callers are expected to branch on it
// (typically by starting a login flow), never to treat it as a crash.
var ErrNotAuthenticated = errors.New("not authenticated")

// Store reads and writes the persisted credential.
//
// At most one credential is stored. Load returns (nil, nil) when no
// credential has ever been saved, which is distinct from a decode failure
// on a present-but-corrupt record.
type Store interface {
	// Save persists the token, replacing any previous record.
	Save(ctx context.Context, token *Token) error

	// Load returns the stored token, or (nil, nil) if none is stored.
	// A stored record that cannot be decoded is an error.
	Load(ctx context.Context) (*Token, error)

	// Delete removes the stored token. Deleting when nothing is stored
	// is not an error.
	Delete(ctx context.Context) error
}

// Refresher exchanges a refresh token for a new credential. Any storefront
// client can satisfy it; the Manager depends on nothing else, so the
// lifecycle logic is testable with a stand-in implementation.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}
