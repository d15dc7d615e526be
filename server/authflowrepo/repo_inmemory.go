package authflowrepo

import (
	"errors"
	"sync"
	"time"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
// Entries older than the timeout are treated as expired.
type InMemoryRepo struct {
	mu      sync.RWMutex
	states  map[string]*AuthFlowState
	timeout time.Duration
	now     func() time.Time
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory auth flow state repository
func NewInMemoryRepo(timeout time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		states:  make(map[string]*AuthFlowState),
		timeout: timeout,
		now:     time.Now,
	}
}

// WithClock replaces the time source, used by tests
func (r *InMemoryRepo) WithClock(now func() time.Time) *InMemoryRepo {
	r.now = now
	return r
}

// Upsert stores or updates an auth flow state
func (r *InMemoryRepo) Upsert(state string, authState *AuthFlowState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if authState == nil || authState.AuthorizationRequest == nil {
		return errors.New("authState cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to prevent external modifications
	stored := *authState
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	r.states[state] = &stored
	return nil
}

// Remove retrieves and deletes an auth flow state. Expired entries are deleted too.
func (r *InMemoryRepo) Remove(state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	authState, exists := r.states[state]
	if !exists {
		return nil, ErrStateNotFound
	}
	delete(r.states, state)
	if r.expired(authState) {
		return nil, ErrStateExpired
	}
	return authState, nil
}

// PurgeExpired deletes every expired entry and returns how many were removed
func (r *InMemoryRepo) PurgeExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for state, authState := range r.states {
		if r.expired(authState) {
			delete(r.states, state)
			purged++
		}
	}
	return purged
}

// Len returns the number of stored entries, expired or not
func (r *InMemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}

func (r *InMemoryRepo) expired(authState *AuthFlowState) bool {
	if r.timeout <= 0 {
		return false
	}
	return r.now().Sub(authState.CreatedAt) > r.timeout
}
