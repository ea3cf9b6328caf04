// Package postgres implements the record store adapter on PostgreSQL for
// single-node deployments that do not run the replicated ledger. Writes are
// transactional: the current value and its history entry commit together, so
// history reads always agree with the head value. A write locks the head row
// and rejects versioned payloads that do not follow it, so of two writers
// racing on one key the one holding stale state fails with WRITE_CONFLICT.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"foncier/internal/ledger"
	derrors "foncier/pkg/domain-errors"
	"foncier/pkg/platform/events"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	key   TEXT PRIMARY KEY,
	value BYTEA NOT NULL
);
CREATE TABLE IF NOT EXISTS record_history (
	seq       BIGSERIAL PRIMARY KEY,
	key       TEXT NOT NULL,
	tx_ref    TEXT NOT NULL,
	ts        TIMESTAMPTZ NOT NULL,
	is_delete BOOLEAN NOT NULL DEFAULT FALSE,
	value     BYTEA
);
CREATE INDEX IF NOT EXISTS record_history_key_idx ON record_history (key, seq);
`

// Store implements ledger.Store on *sql.DB.
type Store struct {
	db   *sql.DB
	sink events.Sink

	// DefaultIdentity is returned when no identity was injected via context.
	DefaultIdentity ledger.Identity
}

// Option configures a Store.
type Option func(*Store)

// WithEventSink forwards emitted events to sink.
func WithEventSink(sink events.Sink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithDefaultIdentity sets the fallback caller identity.
func WithDefaultIdentity(id ledger.Identity) Option {
	return func(s *Store) { s.DefaultIdentity = id }
}

// New wraps an open database handle. Migrate must be called once before use.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to the given DSN and applies the schema.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "open postgres")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, derrors.Wrap(err, derrors.CodeInternal, "ping postgres")
	}
	s := New(db, opts...)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies the adapter schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "migrate record store")
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInternal, "get record")
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	ts, err := s.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	txRef, ok := ledger.TxRefFrom(ctx)
	if !ok {
		txRef = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "begin put")
	}
	defer tx.Rollback()

	var prior []byte
	err = tx.QueryRowContext(ctx, `SELECT value FROM records WHERE key = $1 FOR UPDATE`, key).Scan(&prior)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return derrors.Wrap(err, derrors.CodeInternal, "lock record")
	}
	if err := ledger.CheckVersion(key, prior, value); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "put record")
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO record_history (key, tx_ref, ts, is_delete, value)
		VALUES ($1, $2, $3, FALSE, $4)`, key, txRef, ts, value); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "append record history")
	}
	if err := tx.Commit(); err != nil {
		return derrors.Wrap(err, derrors.CodeInternal, "commit put")
	}
	return nil
}

func (s *Store) RangeScan(ctx context.Context, start, end string) ([]ledger.KV, error) {
	query := `SELECT key, value FROM records WHERE key >= $1`
	args := []any{start}
	if end != "" {
		query += ` AND key < $2`
		args = append(args, end)
	}
	query += ` ORDER BY key`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeQuery, "range scan")
	}
	defer rows.Close()

	var out []ledger.KV
	for rows.Next() {
		var kv ledger.KV
		if err := rows.Scan(&kv.Key, &kv.Value); err != nil {
			return nil, derrors.Wrap(err, derrors.CodeQuery, "scan row")
		}
		out = append(out, kv)
	}
	if err := rows.Err(); err != nil {
		return nil, derrors.Wrap(err, derrors.CodeQuery, "range scan rows")
	}
	return out, nil
}

func (s *Store) HistoryForKey(ctx context.Context, key string) ([]ledger.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tx_ref, ts, is_delete, value FROM record_history
		WHERE key = $1 ORDER BY seq`, key)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeQuery, "history query")
	}
	defer rows.Close()

	var out []ledger.HistoryEntry
	for rows.Next() {
		var entry ledger.HistoryEntry
		if err := rows.Scan(&entry.TxRef, &entry.Timestamp, &entry.IsDelete, &entry.Value); err != nil {
			return nil, derrors.Wrap(err, derrors.CodeQuery, "history scan")
		}
		entry.Timestamp = entry.Timestamp.UTC()
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, derrors.Wrap(err, derrors.CodeQuery, "history rows")
	}
	if len(out) == 0 {
		return nil, ledger.ErrNotFound
	}
	return out, nil
}

func (s *Store) EmitEvent(ctx context.Context, name string, payload []byte) error {
	if s.sink == nil {
		return nil
	}
	ts, err := s.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	txRef, _ := ledger.TxRefFrom(ctx)
	return s.sink.Publish(ctx, events.Event{
		Name:      name,
		TxRef:     txRef,
		Timestamp: ts,
		Payload:   append([]byte(nil), payload...),
	})
}

// TxTimestamp prefers the gateway-injected timestamp. Without one it falls
// back to the adapter's clock; the adapter is the designated source of
// transaction time in single-node mode.
func (s *Store) TxTimestamp(ctx context.Context) (time.Time, error) {
	if ts, ok := ledger.TxTimestampFrom(ctx); ok {
		return ts, nil
	}
	return time.Now().UTC().Truncate(time.Second), nil
}

func (s *Store) CallerIdentity(ctx context.Context) (ledger.Identity, error) {
	if id, ok := ledger.IdentityFrom(ctx); ok {
		return id, nil
	}
	return s.DefaultIdentity, nil
}
