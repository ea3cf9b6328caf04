// Package events carries domain events out of the contract engine. Events
// describe completed transitions (contract created, signed, validated, ...)
// and are emitted once per successful write. Sinks fan events out to whatever
// the deployment wires in: an in-memory buffer for tests, Kafka for the
// platform pipeline.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Event is a single domain event. Payload is the canonical JSON the service
// built for the transition; Name routes it.
type Event struct {
	Name      string
	TxRef     string
	Timestamp time.Time
	Payload   json.RawMessage
}

// Sink receives published events.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// MemorySink buffers events for inspection. Used by tests and as the default
// when no broker is configured.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (s *MemorySink) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.events...)
}
