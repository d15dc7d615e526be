package registrations

import (
	"fmt"
	"sort"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu            sync.RWMutex
	registrations map[string]*ClientRegistration
}

// NewInMemoryRepo creates a repository holding the given registrations.
// Every registration is normalized and validated, and ids must be unique.
func NewInMemoryRepo(registrations ...*ClientRegistration) (*InMemoryRepo, error) {
	r := &InMemoryRepo{
		registrations: make(map[string]*ClientRegistration, len(registrations)),
	}
	for _, reg := range registrations {
		if reg == nil {
			return nil, fmt.Errorf("%w: registration cannot be nil", ErrInvalidRegistration)
		}
		if _, exists := r.registrations[reg.RegistrationID]; exists {
			return nil, fmt.Errorf("%w: duplicate registrationId %q", ErrInvalidRegistration, reg.RegistrationID)
		}
		if err := r.Upsert(reg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Upsert stores or replaces a registration
func (r *InMemoryRepo) Upsert(registration *ClientRegistration) error {
	reg := registration.Copy()
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations[reg.RegistrationID] = reg
	return nil
}

func (r *InMemoryRepo) FindByRegistrationID(registrationID string) (*ClientRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.registrations[registrationID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRegistrationNotFound, registrationID)
	}
	return reg.Copy(), nil
}

// IDs returns the registration ids in sorted order
func (r *InMemoryRepo) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.registrations))
	for id := range r.registrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
