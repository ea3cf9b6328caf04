// Package search implements secondary lookup over the record population.
// The store offers only point lookup and key-range scans, so equality and
// substring queries run as a scan-and-filter pass. The contract preserved
// here is the interface, not the strategy: accept a predicate, return matches
// ordered by id with their count. A richer store may swap in a real index.
package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"foncier/internal/contract/canonical"
	"foncier/internal/contract/models"
	"foncier/internal/ledger"
	derrors "foncier/pkg/domain-errors"
)

// Predicate filters records during a scan.
type Predicate func(*models.ContractRecord) bool

// Result is an ordered set of matches. Count always equals len(Records).
type Result struct {
	Records []*models.ContractRecord
	Count   int
}

// Index scans the ledger and filters in memory.
type Index struct {
	store  ledger.Store
	logger *slog.Logger
}

func New(store ledger.Store, logger *slog.Logger) *Index {
	return &Index{store: store, logger: logger}
}

// Query returns all active (non-deleted, non-archived) records matching pred,
// ordered by id. A nil pred matches everything active. Entries that fail to
// parse are logged and skipped; one malformed record never aborts the read.
func (i *Index) Query(ctx context.Context, pred Predicate) (Result, error) {
	kvs, err := i.store.RangeScan(ctx, "", "")
	if err != nil {
		return Result{}, derrors.Wrap(err, derrors.CodeQuery, "record scan failed")
	}

	records := make([]*models.ContractRecord, 0, len(kvs))
	for _, kv := range kvs {
		if kv.Key == ledger.MetadataKey {
			continue
		}
		rec, err := canonical.UnmarshalRecord(kv.Value)
		if err != nil {
			i.logger.WarnContext(ctx, "skipping unparseable record",
				"key", kv.Key,
				"error", err.Error(),
			)
			continue
		}
		if rec.Status == models.StatusDeleted || rec.Status == models.StatusArchived {
			continue
		}
		if pred != nil && !pred(rec) {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(a, b int) bool { return records[a].ID < records[b].ID })
	return Result{Records: records, Count: len(records)}, nil
}

// ByOwner matches records whose owner name contains name, case-insensitively.
func (i *Index) ByOwner(ctx context.Context, name string) (Result, error) {
	needle := strings.ToLower(name)
	return i.Query(ctx, func(rec *models.ContractRecord) bool {
		return strings.Contains(strings.ToLower(rec.Owner.Name), needle)
	})
}

// ByRegion matches records whose parcel region equals region exactly.
func (i *Index) ByRegion(ctx context.Context, region string) (Result, error) {
	return i.Query(ctx, func(rec *models.ContractRecord) bool {
		return rec.Parcel.Region == region
	})
}

// ByType matches records of the given contract type.
func (i *Index) ByType(ctx context.Context, t models.ContractType) (Result, error) {
	return i.Query(ctx, func(rec *models.ContractRecord) bool {
		return rec.Type == t
	})
}
