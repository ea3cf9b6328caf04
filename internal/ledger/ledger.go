// Package ledger is the engine's only boundary to durable storage. The
// replicated-ledger runtime (or a single-node stand-in) provides atomic
// key/value writes, ordered history per key, and the transaction timestamp
// and caller identity for the current request. Every non-deterministic input
// the engine needs flows through this interface; the engine itself never
// touches a clock or a random source.
package ledger

import (
	"context"
	"encoding/json"
	"time"

	derrors "foncier/pkg/domain-errors"
)

// MetadataKey is the reserved key holding engine metadata. It is excluded
// from record scans and searches.
const MetadataKey = "ENGINE_METADATA"

// ErrNotFound keeps storage-specific 404s consistent across implementations.
var ErrNotFound = derrors.New(derrors.CodeNotFound, "record not found")

// Identity is the authenticated caller as asserted by the gateway.
type Identity struct {
	ID           string
	Organization string
}

// KV is one entry returned by a range scan.
type KV struct {
	Key   string
	Value []byte
}

// HistoryEntry is one physical write observed for a key, oldest first.
type HistoryEntry struct {
	TxRef     string
	Timestamp time.Time
	IsDelete  bool
	Value     []byte
}

// Store is the record store adapter consumed by the contract service.
type Store interface {
	// Get returns the current value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes value under key atomically and records a history entry.
	// Versioned payloads must advance the stored version by exactly one;
	// a stale write fails with WRITE_CONFLICT instead of overwriting.
	Put(ctx context.Context, key string, value []byte) error
	// RangeScan returns entries with start <= key < end in key order.
	// Empty bounds are unbounded.
	RangeScan(ctx context.Context, start, end string) ([]KV, error)
	// HistoryForKey returns every write for key, oldest first.
	HistoryForKey(ctx context.Context, key string) ([]HistoryEntry, error)
	// EmitEvent publishes a named domain event alongside the transaction.
	EmitEvent(ctx context.Context, name string, payload []byte) error
	// TxTimestamp is the timestamp of the current transaction, identical on
	// every replica executing it.
	TxTimestamp(ctx context.Context) (time.Time, error)
	// CallerIdentity identifies the submitting client.
	CallerIdentity(ctx context.Context) (Identity, error)
}

// VersionOf reads the mutation counter embedded in a stored payload. Payloads
// that do not carry one (the engine metadata key) report 0.
func VersionOf(value []byte) int64 {
	var probe struct {
		Metadata struct {
			Version int64 `json:"version"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(value, &probe); err != nil {
		return 0
	}
	return probe.Metadata.Version
}

// CheckVersion is the optimistic concurrency guard shared by the store
// implementations. A versioned payload must carry exactly the version that
// follows the stored head, so a writer that observed a stale prior state
// fails instead of silently overwriting a concurrent mutation. Unversioned
// payloads pass unchecked. Implementations call this while holding their
// per-key write lock.
func CheckVersion(key string, prior, next []byte) error {
	incoming := VersionOf(next)
	if incoming == 0 {
		return nil
	}
	head := VersionOf(prior)
	if incoming != head+1 {
		return derrors.Newf(derrors.CodeConflict, "stale write for %s: version %d does not follow %d", key, incoming, head)
	}
	return nil
}

type txTimestampKey struct{}
type txRefKey struct{}
type identityKey struct{}

// WithTxContext injects the transaction timestamp and reference for the
// current request. The gateway sets these at ingress so every downstream
// component observes the same values.
func WithTxContext(ctx context.Context, ts time.Time, txRef string) context.Context {
	ctx = context.WithValue(ctx, txTimestampKey{}, ts.UTC().Truncate(time.Second))
	return context.WithValue(ctx, txRefKey{}, txRef)
}

// WithIdentity injects the authenticated caller.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// TxTimestampFrom extracts an injected transaction timestamp, if any.
func TxTimestampFrom(ctx context.Context) (time.Time, bool) {
	ts, ok := ctx.Value(txTimestampKey{}).(time.Time)
	return ts, ok
}

// TxRefFrom extracts an injected transaction reference, if any.
func TxRefFrom(ctx context.Context) (string, bool) {
	ref, ok := ctx.Value(txRefKey{}).(string)
	return ref, ok && ref != ""
}

// IdentityFrom extracts an injected caller identity, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
