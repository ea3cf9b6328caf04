// Package service is the composition root of the contract engine. It
// orchestrates the workflow engine, the canonical serializer, the query
// index, and the record store adapter behind the public operations. Every
// write path follows the same shape: read the current state once, validate
// the guard and input, compute the next state, append one audit action,
// persist atomically, emit one domain event. A failed guard aborts before
// any persistence call.
package service

import (
	"context"
	"log/slog"

	"foncier/internal/contract/canonical"
	"foncier/internal/contract/models"
	"foncier/internal/contract/search"
	"foncier/internal/contract/workflow"
	"foncier/internal/ledger"
	"foncier/internal/platform/metrics"
	derrors "foncier/pkg/domain-errors"
)

// EngineVersion is written into the reserved metadata key at bootstrap.
const EngineVersion = "1.0.0"

// Domain event names, one per transition type.
const (
	EventContractCreated   = "ContractCreated"
	EventContractModified  = "ContractModified"
	EventContractSigned    = "ContractSigned"
	EventContractApproved  = "ContractApproved"
	EventContractValidated = "ContractValidated"
	EventContractRejected  = "ContractRejected"
	EventContractDeleted   = "ContractDeleted"
	EventContractArchived  = "ContractArchived"
)

// Service exposes the contract lifecycle operations.
type Service struct {
	store   ledger.Store
	engine  *workflow.Engine
	index   *search.Index
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(store ledger.Store, engine *workflow.Engine, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		engine:  engine,
		index:   search.New(store, logger),
		logger:  logger,
		metrics: m,
	}
}

// CreateInput carries everything needed to create a record. The id, the code
// sequence, and (via the adapter) the timestamp all come from the caller:
// the engine generates nothing, so replaying the same input reproduces the
// same record byte for byte.
type CreateInput struct {
	ID           string
	Code         string
	Type         models.ContractType
	Owner        models.Person
	Beneficiary  models.Person
	Parcel       models.Terrain
	Extra        map[string]string
	CodeSequence uint64
}

// ModifyInput carries the business fields a modify replaces. Everything
// accumulated on the record (actions, signatures, approval, validation)
// is preserved.
type ModifyInput struct {
	Type        models.ContractType
	Owner       models.Person
	Beneficiary models.Person
	Parcel      models.Terrain
	Extra       map[string]string
}

// engineMetadata is stored under the reserved key at bootstrap.
type engineMetadata struct {
	Organizations []string `json:"organizations"`
	Version       string   `json:"version"`
	Initialized   string   `json:"initialized"`
}

// domainEvent is the payload emitted for every transition.
type domainEvent struct {
	Type         string                `json:"type"`
	RecordID     string                `json:"recordId"`
	Status       models.ContractStatus `json:"status"`
	Organization string                `json:"organization"`
}

// Bootstrap writes the engine metadata key once. Safe to call repeatedly;
// an existing key is left untouched.
func (s *Service) Bootstrap(ctx context.Context, organizations []string) error {
	if _, err := s.store.Get(ctx, ledger.MetadataKey); err == nil {
		return nil
	} else if !derrors.Is(err, derrors.CodeNotFound) {
		return err
	}
	ts, err := s.store.TxTimestamp(ctx)
	if err != nil {
		return err
	}
	payload, err := canonical.Marshal(engineMetadata{
		Organizations: organizations,
		Version:       EngineVersion,
		Initialized:   models.NewTimestamp(ts).Format(models.TimeLayout),
	})
	if err != nil {
		return err
	}
	return s.store.Put(ctx, ledger.MetadataKey, payload)
}

// Create registers a new draft record under input.ID.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.ContractRecord, error) {
	if input.ID == ledger.MetadataKey {
		return nil, derrors.Newf(derrors.CodeValidation, "record id %s is reserved", input.ID)
	}
	if _, err := s.store.Get(ctx, input.ID); err == nil {
		return nil, derrors.Newf(derrors.CodeAlreadyExists, "record %s already exists", input.ID)
	} else if !derrors.Is(err, derrors.CodeNotFound) {
		return nil, err
	}

	tx, caller, err := s.txContext(ctx)
	if err != nil {
		return nil, err
	}
	parcel, err := normalizeParcel(input.Parcel)
	if err != nil {
		s.metrics.ObserveGuardRejection(string(derrors.CodeOf(err)))
		return nil, err
	}

	rec := &models.ContractRecord{
		ID:          input.ID,
		Code:        input.Code,
		Type:        input.Type,
		Owner:       input.Owner,
		Beneficiary: input.Beneficiary,
		Parcel:      parcel,
		Extra:       input.Extra,
		Metadata: models.Metadata{
			CreatedByOrg:  caller.Organization,
			CreatedByUser: caller.ID,
			CreationDate:  tx.Timestamp,
		},
	}
	next, err := s.engine.Create(rec, tx, input.CodeSequence)
	if err != nil {
		s.metrics.ObserveGuardRejection(string(derrors.CodeOf(err)))
		return nil, err
	}
	if err := s.persist(ctx, next, EventContractCreated, caller); err != nil {
		return nil, err
	}
	s.metrics.IncrementRecordsCreated()
	s.metrics.ObserveTransition(string(models.ActionCreate))
	return next, nil
}

// Read fetches a record by id.
func (s *Service) Read(ctx context.Context, id string) (*models.ContractRecord, error) {
	data, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return canonical.UnmarshalRecord(data)
}

// Modify replaces the business fields of a modifiable record.
func (s *Service) Modify(ctx context.Context, id string, input ModifyInput) (*models.ContractRecord, error) {
	parcel, err := normalizeParcel(input.Parcel)
	if err != nil {
		s.metrics.ObserveGuardRejection(string(derrors.CodeOf(err)))
		return nil, err
	}
	replacement := &models.ContractRecord{
		Type:        input.Type,
		Owner:       input.Owner,
		Beneficiary: input.Beneficiary,
		Parcel:      parcel,
		Extra:       input.Extra,
	}
	return s.mutate(ctx, id, models.ActionModify, EventContractModified,
		func(current *models.ContractRecord, tx workflow.TxContext) (*models.ContractRecord, error) {
			return s.engine.Modify(current, replacement, tx)
		})
}

// AddSignature appends a party signature, advancing DRAFT to SIGNED when the
// quorum is met. The signature timestamp is the transaction timestamp.
func (s *Service) AddSignature(ctx context.Context, id string, sig models.PartySignature) (*models.ContractRecord, error) {
	return s.mutate(ctx, id, models.ActionSign, EventContractSigned,
		func(current *models.ContractRecord, tx workflow.TxContext) (*models.ContractRecord, error) {
			if sig.SignedAt.IsZero() {
				sig.SignedAt = tx.Timestamp
			}
			return s.engine.AddSignature(current, sig, tx)
		})
}

// Approve records the administrative approval of a SIGNED record.
func (s *Service) Approve(ctx context.Context, id string, approval models.ContractApprobation) (*models.ContractRecord, error) {
	return s.mutate(ctx, id, models.ActionApprove, EventContractApproved,
		func(current *models.ContractRecord, tx workflow.TxContext) (*models.ContractRecord, error) {
			return s.engine.Approve(current, approval, tx)
		})
}

// Validate certifies an APPROVED record with its canonical document hash.
func (s *Service) Validate(ctx context.Context, id string, validation models.ContractValidation) (*models.ContractRecord, error) {
	return s.mutate(ctx, id, models.ActionValidate, EventContractValidated,
		func(current *models.ContractRecord, tx workflow.TxContext) (*models.ContractRecord, error) {
			return s.engine.Validate(current, validation, tx)
		})
}

// Reject sends a record back to REJECTED with the given reason.
func (s *Service) Reject(ctx context.Context, id, reason string) (*models.ContractRecord, error) {
	return s.mutate(ctx, id, models.ActionReject, EventContractRejected,
		func(current *models.ContractRecord, tx workflow.TxContext) (*models.ContractRecord, error) {
			return s.engine.Reject(current, reason, tx)
		})
}

// SoftDelete marks a record DELETED; it and its history remain queryable.
func (s *Service) SoftDelete(ctx context.Context, id, reason string) (*models.ContractRecord, error) {
	return s.mutate(ctx, id, models.ActionDelete, EventContractDeleted,
		func(current *models.ContractRecord, tx workflow.TxContext) (*models.ContractRecord, error) {
			return s.engine.SoftDelete(current, reason, tx)
		})
}

// Archive removes a record from active listings without touching the
// approval pipeline.
func (s *Service) Archive(ctx context.Context, id string) (*models.ContractRecord, error) {
	return s.mutate(ctx, id, models.ActionArchive, EventContractArchived,
		func(current *models.ContractRecord, tx workflow.TxContext) (*models.ContractRecord, error) {
			return s.engine.Archive(current, tx)
		})
}

// ListActive returns all non-deleted, non-archived records ordered by id.
func (s *Service) ListActive(ctx context.Context) (search.Result, error) {
	return s.index.Query(ctx, nil)
}

// SearchByOwner finds active records by owner name substring.
func (s *Service) SearchByOwner(ctx context.Context, name string) (search.Result, error) {
	return s.index.ByOwner(ctx, name)
}

// SearchByRegion finds active records in the given region.
func (s *Service) SearchByRegion(ctx context.Context, region string) (search.Result, error) {
	return s.index.ByRegion(ctx, region)
}

// SearchByType finds active records of the given type.
func (s *Service) SearchByType(ctx context.Context, t models.ContractType) (search.Result, error) {
	return s.index.ByType(ctx, t)
}

// HistoryEntry is one point in a record's provenance: the ledger's native
// history entry plus, when the stored payload parses, the record snapshot at
// that write.
type HistoryEntry struct {
	TxRef     string
	Timestamp models.Timestamp
	IsDelete  bool
	Record    *models.ContractRecord
	Raw       []byte
}

// History merges the ledger's key history with parsed snapshots. A snapshot
// that fails to parse is returned raw rather than aborting the whole read.
func (s *Service) History(ctx context.Context, id string) ([]HistoryEntry, error) {
	native, err := s.store.HistoryForKey(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(native))
	for _, entry := range native {
		he := HistoryEntry{
			TxRef:     entry.TxRef,
			Timestamp: models.NewTimestamp(entry.Timestamp),
			IsDelete:  entry.IsDelete,
		}
		if !entry.IsDelete {
			if rec, err := canonical.UnmarshalRecord(entry.Value); err == nil {
				he.Record = rec
			} else {
				s.logger.WarnContext(ctx, "unparseable history snapshot",
					"id", id,
					"tx_ref", entry.TxRef,
					"error", err.Error(),
				)
				he.Raw = entry.Value
			}
		}
		out = append(out, he)
	}
	return out, nil
}

// mutate is the shared write path for every transition on an existing record.
func (s *Service) mutate(
	ctx context.Context,
	id string,
	action models.ActionType,
	eventName string,
	op func(current *models.ContractRecord, tx workflow.TxContext) (*models.ContractRecord, error),
) (*models.ContractRecord, error) {
	current, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	tx, caller, err := s.txContext(ctx)
	if err != nil {
		return nil, err
	}
	next, err := op(current, tx)
	if err != nil {
		s.metrics.ObserveGuardRejection(string(derrors.CodeOf(err)))
		return nil, err
	}
	if err := s.persist(ctx, next, eventName, caller); err != nil {
		return nil, err
	}
	s.metrics.ObserveTransition(string(action))
	return next, nil
}

// txContext assembles the deterministic inputs for one transition from the
// record store adapter.
func (s *Service) txContext(ctx context.Context) (workflow.TxContext, ledger.Identity, error) {
	ts, err := s.store.TxTimestamp(ctx)
	if err != nil {
		return workflow.TxContext{}, ledger.Identity{}, err
	}
	caller, err := s.store.CallerIdentity(ctx)
	if err != nil {
		return workflow.TxContext{}, ledger.Identity{}, err
	}
	txRef, _ := ledger.TxRefFrom(ctx)
	tx := workflow.TxContext{
		Timestamp: models.NewTimestamp(ts),
		TxID:      txRef,
	}
	if caller.ID != "" || caller.Organization != "" {
		tx.Actor = &models.Actor{UserID: caller.ID, Organization: caller.Organization}
	}
	return tx, caller, nil
}

// persist writes the record and emits the transition event.
func (s *Service) persist(ctx context.Context, rec *models.ContractRecord, eventName string, caller ledger.Identity) error {
	data, err := canonical.MarshalRecord(rec)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, rec.ID, data); err != nil {
		return err
	}
	payload, err := canonical.Marshal(domainEvent{
		Type:         eventName,
		RecordID:     rec.ID,
		Status:       rec.Status,
		Organization: caller.Organization,
	})
	if err != nil {
		return err
	}
	if err := s.store.EmitEvent(ctx, eventName, payload); err != nil {
		s.logger.WarnContext(ctx, "event emission failed",
			"event", eventName,
			"record_id", rec.ID,
			"error", err.Error(),
		)
	}
	return nil
}

// normalizeParcel fills SurfaceM2 from the captured surface and unit. Passing
// an already normalized terrain through is a no-op.
func normalizeParcel(t models.Terrain) (models.Terrain, error) {
	if !t.CapturedUnit.IsValid() {
		return t, derrors.Newf(derrors.CodeValidation, "invalid area unit: %s", t.CapturedUnit)
	}
	if t.CapturedSurface <= 0 {
		return t, derrors.New(derrors.CodeValidation, "parcel surface must be strictly positive")
	}
	normalized, err := models.NormalizeSurface(t.CapturedSurface, t.CapturedUnit)
	if err != nil {
		return t, err
	}
	t.SurfaceM2 = normalized
	return t, nil
}
