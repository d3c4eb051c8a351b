package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RefreshWindow is how long before actual expiry a token is proactively
// treated as stale. Refreshing ahead of the deadline keeps API calls from
// ever racing the expiry instant with an almost-dead token.
const RefreshWindow = 5 * time.Minute

// Manager is the single source of truth for "is this process authenticated,
// and what is the current usable token". It holds zero or one Token, owns
// the in-memory copy exclusively, and funnels every persistence access
// through its Store.
//
// Manager is safe for concurrent use. Each operation is a single
// read-decide-write critical section; concurrent EnsureValidToken calls
// that both observe a stale token share one refresh instead of issuing
// duplicates.
type Manager struct {
	store Store

	mu    sync.Mutex
	token *Token

	refresh singleflight.Group
}

// NewManager creates a Manager backed by store and hydrates it with any
// previously persisted credential. A missing credential is a valid empty
// state; a present-but-corrupt one is a hard error, so data loss never
// passes silently for "never authenticated".
func NewManager(ctx context.Context, store Store) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("missing credential store")
	}

	token, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading persisted credential: %w", err)
	}

	return &Manager{
		store: store,
		token: token,
	}, nil
}

// IsAuthenticated reports whether a credential is held and not yet expired.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.token != nil && !m.token.IsExpired()
}

// Token returns the current credential. It fails with ErrNotAuthenticated
// when no credential is held or the held one is past expiry, even though an
// expired credential stays in memory for a later refresh attempt.
func (m *Manager) Token() (*Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil || m.token.IsExpired() {
		return nil, ErrNotAuthenticated
	}
	return m.token, nil
}

// NeedsRefresh reports whether the held credential expires within
// RefreshWindow. It is false when no credential is held: there is nothing
// to refresh.
func (m *Manager) NeedsRefresh() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.token != nil && m.token.ExpiresWithin(RefreshWindow)
}

// SetToken persists token and then installs it as the current credential.
// On persistence failure the in-memory state is left unchanged, so a
// caller never observes a token that failed to persist.
func (m *Manager) SetToken(ctx context.Context, token *Token) error {
	if err := token.Validate(); err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, token); err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}
	m.token = token
	return nil
}

// Logout deletes the persisted credential and clears the in-memory one.
// Memory is cleared only after a successful delete: a failed delete leaves
// the session intact so the caller can retry instead of appearing logged
// out while the credential file survives on disk.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx); err != nil {
		return fmt.Errorf("deleting persisted credential: %w", err)
	}
	m.token = nil
	return nil
}

// EnsureValidToken returns a credential that is not about to expire,
// refreshing through refresher first when the held one is stale. The old
// credential is kept on a failed refresh so the next call can retry.
//
// At most one refresh is in flight per process; concurrent callers that
// also observe staleness wait for it and share its result rather than
// issuing their own network call and persistence write.
func (m *Manager) EnsureValidToken(ctx context.Context, refresher Refresher) (*Token, error) {
	m.mu.Lock()
	current := m.token
	m.mu.Unlock()

	if current == nil {
		return nil, ErrNotAuthenticated
	}

	// An already-expired token also reports ExpiresWithin, but the expired
	// case is spelled out so the staleness rule reads as what it is.
	if !current.ExpiresWithin(RefreshWindow) && !current.IsExpired() {
		return current, nil
	}

	if current.RefreshToken == "" {
		return nil, ErrNotAuthenticated
	}

	fresh, err, _ := m.refresh.Do("refresh", func() (any, error) {
		// A caller that waited out an in-flight refresh arrives here with
		// the replacement already installed; don't refresh twice.
		m.mu.Lock()
		if t := m.token; t != nil && !t.ExpiresWithin(RefreshWindow) && !t.IsExpired() {
			m.mu.Unlock()
			return t, nil
		}
		m.mu.Unlock()

		token, err := refresher.Refresh(ctx, current.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("refreshing credential: %w", err)
		}
		if err := m.SetToken(ctx, token); err != nil {
			return nil, err
		}
		return token, nil
	})
	if err != nil {
		return nil, err
	}
	return fresh.(*Token), nil
}
