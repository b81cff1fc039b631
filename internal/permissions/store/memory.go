package store

import (
	"context"
	"sync"

	"mediaconsole/internal/permissions"
	id "mediaconsole/pkg/domain"
)

type memberKey struct {
	partner id.PartnerID
	user    id.UserID
}

// InMemory keeps grants in a map. Used in development and tests.
type InMemory struct {
	mu     sync.RWMutex
	grants map[memberKey][]permissions.Permission
}

func NewInMemory() *InMemory {
	return &InMemory{grants: make(map[memberKey][]permissions.Permission)}
}

// Grant adds tokens to the user's grants within the partner.
func (s *InMemory) Grant(_ context.Context, partnerID id.PartnerID, userID id.UserID, ps ...permissions.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memberKey{partnerID, userID}
	s.grants[k] = append(s.grants[k], ps...)
	return nil
}

// Revoke removes tokens from the user's grants within the partner.
func (s *InMemory) Revoke(_ context.Context, partnerID id.PartnerID, userID id.UserID, ps ...permissions.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memberKey{partnerID, userID}
	drop := permissions.NewSet(ps...)
	kept := s.grants[k][:0]
	for _, p := range s.grants[k] {
		if !drop.Has(p) {
			kept = append(kept, p)
		}
	}
	s.grants[k] = kept
	return nil
}

// Permissions returns the user's set. Unknown users hold nothing.
func (s *InMemory) Permissions(_ context.Context, partnerID id.PartnerID, userID id.UserID) (permissions.Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return permissions.NewSet(s.grants[memberKey{partnerID, userID}]...), nil
}
