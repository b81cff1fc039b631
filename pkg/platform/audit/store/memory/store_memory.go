package memory

import (
	"context"
	"sort"
	"sync"

	id "mediaconsole/pkg/domain"
	audit "mediaconsole/pkg/platform/audit"
)

// DefaultCapacity bounds the store when no capacity is given.
const DefaultCapacity = 10000

// InMemoryStore keeps the most recent audit events in process memory. Used
// when no Kafka brokers are configured, and as the publisher fallback while
// Kafka is down. Once full, each append evicts the oldest event.
type InMemoryStore struct {
	mu       sync.RWMutex
	events   []audit.Event
	next     int
	full     bool
	capacity int
	evicted  int
}

type Option func(*InMemoryStore)

// WithCapacity sets how many events are retained.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.events = make([]audit.Event, 0, min(s.capacity, 1024))
	return s
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.full {
		s.events = append(s.events, event)
		if len(s.events) == s.capacity {
			s.full = true
		}
		return nil
	}
	s.events[s.next] = event
	s.next = (s.next + 1) % s.capacity
	s.evicted++
	return nil
}

// ordered returns retained events oldest first. Callers hold mu.
func (s *InMemoryStore) ordered() []audit.Event {
	out := make([]audit.Event, 0, len(s.events))
	if !s.full {
		return append(out, s.events...)
	}
	out = append(out, s.events[s.next:]...)
	return append(out, s.events[:s.next]...)
}

// ListByUser returns the user's retained events in append order.
func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []audit.Event{}
	for _, e := range s.ordered() {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns up to limit events, most recent first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	all := s.ordered()
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Len returns the number of retained events.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Evicted returns how many events were dropped to stay within capacity.
func (s *InMemoryStore) Evicted() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evicted
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
	s.next = 0
	s.full = false
	s.evicted = 0
}
