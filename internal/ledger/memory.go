package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"foncier/pkg/platform/events"
)

// MemoryStore is the in-memory store used by tests and single-process
// deployments. It keeps full per-key history so history reads behave like
// the replicated runtime's. It intentionally favors clarity over performance.
type MemoryStore struct {
	mu      sync.RWMutex
	values  map[string][]byte
	history map[string][]HistoryEntry
	txSeq   uint64

	// NowFunc supplies the transaction timestamp when none is injected via
	// context. Tests pin it to a fixed instant.
	NowFunc func() time.Time
	// DefaultIdentity is returned when no identity is injected via context.
	DefaultIdentity Identity

	sink events.Sink
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithEventSink forwards emitted events to sink.
func WithEventSink(sink events.Sink) MemoryOption {
	return func(s *MemoryStore) { s.sink = sink }
}

// WithNowFunc pins the fallback transaction clock.
func WithNowFunc(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.NowFunc = now }
}

// WithDefaultIdentity sets the fallback caller identity.
func WithDefaultIdentity(id Identity) MemoryOption {
	return func(s *MemoryStore) { s.DefaultIdentity = id }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		values:  make(map[string][]byte),
		history: make(map[string][]HistoryEntry),
		NowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	ts, err := s.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := CheckVersion(key, s.values[key], value); err != nil {
		return err
	}
	s.txSeq++
	txRef, ok := TxRefFrom(ctx)
	if !ok {
		txRef = fmt.Sprintf("tx-%06d", s.txSeq)
	}
	stored := append([]byte(nil), value...)
	s.values[key] = stored
	s.history[key] = append(s.history[key], HistoryEntry{
		TxRef:     txRef,
		Timestamp: ts,
		IsDelete:  false,
		Value:     stored,
	})
	return nil
}

func (s *MemoryStore) RangeScan(_ context.Context, start, end string) ([]KV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		if k < start {
			continue
		}
		if end != "" && k >= end {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]KV, 0, len(keys))
	for _, k := range keys {
		out = append(out, KV{Key: k, Value: append([]byte(nil), s.values[k]...)})
	}
	return out, nil
}

func (s *MemoryStore) HistoryForKey(_ context.Context, key string) ([]HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.history[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]HistoryEntry(nil), entries...), nil
}

func (s *MemoryStore) EmitEvent(ctx context.Context, name string, payload []byte) error {
	if s.sink == nil {
		return nil
	}
	ts, err := s.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	txRef, _ := TxRefFrom(ctx)
	return s.sink.Publish(ctx, events.Event{
		Name:      name,
		TxRef:     txRef,
		Timestamp: ts,
		Payload:   append([]byte(nil), payload...),
	})
}

func (s *MemoryStore) TxTimestamp(ctx context.Context) (time.Time, error) {
	if ts, ok := TxTimestampFrom(ctx); ok {
		return ts, nil
	}
	return s.NowFunc().UTC().Truncate(time.Second), nil
}

func (s *MemoryStore) CallerIdentity(ctx context.Context) (Identity, error) {
	if id, ok := IdentityFrom(ctx); ok {
		return id, nil
	}
	return s.DefaultIdentity, nil
}
