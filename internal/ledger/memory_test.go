package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "foncier/pkg/domain-errors"
	"foncier/pkg/platform/events"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
}

func TestGetReturnsNotFound(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	_, err := store.Get(context.Background(), "missing")
	assert.True(t, derrors.Is(err, derrors.CodeNotFound))
}

func TestPutThenGetRoundTrips(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k1", []byte("v1")))
	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestStoredValueIsIsolatedFromCaller(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	ctx := context.Background()

	value := []byte("v1")
	require.NoError(t, store.Put(ctx, "k1", value))
	value[0] = 'X'

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func versionedValue(id string, version int64) []byte {
	return []byte(fmt.Sprintf(`{"id":%q,"metadata":{"version":%d}}`, id, version))
}

func TestPutRejectsStaleVersion(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "c-01", versionedValue("c-01", 1)))
	require.NoError(t, store.Put(ctx, "c-01", versionedValue("c-01", 2)))

	// A writer that read version 1 and lost the race must fail, not overwrite.
	err := store.Put(ctx, "c-01", versionedValue("c-01", 2))
	assert.True(t, derrors.Is(err, derrors.CodeConflict))
	err = store.Put(ctx, "c-01", versionedValue("c-01", 5))
	assert.True(t, derrors.Is(err, derrors.CodeConflict))

	head, getErr := store.Get(ctx, "c-01")
	require.NoError(t, getErr)
	assert.Equal(t, int64(2), VersionOf(head))
	entries, histErr := store.HistoryForKey(ctx, "c-01")
	require.NoError(t, histErr)
	assert.Len(t, entries, 2, "a rejected write must leave no history entry")
}

func TestPutFirstVersionedWriteStartsAtOne(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	err := store.Put(context.Background(), "c-01", versionedValue("c-01", 3))
	assert.True(t, derrors.Is(err, derrors.CodeConflict))
}

func TestPutSkipsVersionCheckForUnversionedPayloads(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, MetadataKey, []byte(`{"organizations":["AFOR"]}`)))
	require.NoError(t, store.Put(ctx, MetadataKey, []byte(`{"organizations":["AFOR","PREFECTURE"]}`)))
}

func TestRangeScanBoundsAndOrder(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	ctx := context.Background()
	for _, k := range []string{"c", "a", "d", "b"} {
		require.NoError(t, store.Put(ctx, k, []byte(k)))
	}

	kvs, err := store.RangeScan(ctx, "b", "d")
	require.NoError(t, err)
	require.Len(t, kvs, 2)
	assert.Equal(t, "b", kvs[0].Key)
	assert.Equal(t, "c", kvs[1].Key)

	all, err := store.RangeScan(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestHistoryPreservesWriteOrder(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k1", []byte("v1")))
	require.NoError(t, store.Put(ctx, "k1", []byte("v2")))
	require.NoError(t, store.Put(ctx, "k1", []byte("v3")))

	entries, err := store.HistoryForKey(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []byte("v1"), entries[0].Value)
	assert.Equal(t, []byte("v3"), entries[2].Value)
	assert.NotEqual(t, entries[0].TxRef, entries[1].TxRef)

	_, err = store.HistoryForKey(ctx, "unknown")
	assert.True(t, derrors.Is(err, derrors.CodeNotFound))
}

func TestContextInjectionWins(t *testing.T) {
	store := NewMemoryStore(
		WithNowFunc(fixedClock()),
		WithDefaultIdentity(Identity{ID: "fallback", Organization: "AFOR"}),
	)
	pinned := time.Date(2026, 6, 1, 12, 0, 0, 500000000, time.UTC)
	ctx := WithTxContext(context.Background(), pinned, "tx-abc")
	ctx = WithIdentity(ctx, Identity{ID: "clerk-3", Organization: "PREFECTURE"})

	ts, err := store.TxTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, pinned.Truncate(time.Second), ts, "injected timestamps are truncated to seconds")

	id, err := store.CallerIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "clerk-3", id.ID)

	require.NoError(t, store.Put(ctx, "k1", []byte("v1")))
	entries, err := store.HistoryForKey(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "tx-abc", entries[0].TxRef)
}

func TestFallbacksWithoutInjection(t *testing.T) {
	store := NewMemoryStore(
		WithNowFunc(fixedClock()),
		WithDefaultIdentity(Identity{ID: "fallback", Organization: "AFOR"}),
	)
	ctx := context.Background()

	ts, err := store.TxTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixedClock()(), ts)

	id, err := store.CallerIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fallback", id.ID)

	require.NoError(t, store.Put(ctx, "k1", []byte("v1")))
	entries, err := store.HistoryForKey(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "tx-000001", entries[0].TxRef)
}

func TestEmitEventForwardsToSink(t *testing.T) {
	sink := events.NewMemorySink()
	store := NewMemoryStore(WithNowFunc(fixedClock()), WithEventSink(sink))
	ctx := WithTxContext(context.Background(), fixedClock()(), "tx-abc")

	require.NoError(t, store.EmitEvent(ctx, "ContractCreated", []byte(`{"recordId":"c-01"}`)))

	published := sink.Events()
	require.Len(t, published, 1)
	assert.Equal(t, "ContractCreated", published[0].Name)
	assert.Equal(t, "tx-abc", published[0].TxRef)
	assert.JSONEq(t, `{"recordId":"c-01"}`, string(published[0].Payload))
}

func TestEmitEventWithoutSinkIsNoop(t *testing.T) {
	store := NewMemoryStore(WithNowFunc(fixedClock()))
	assert.NoError(t, store.EmitEvent(context.Background(), "ContractCreated", nil))
}
