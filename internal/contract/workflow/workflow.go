// Package workflow is the state machine governing contract records. Every
// operation is a pure function of (prior record, caller input, externally
// supplied timestamp and transaction reference): no clocks, no randomness,
// no I/O. Each successful operation returns a fresh record with exactly one
// appended audit action and the version bumped by one; a failed guard leaves
// the input untouched and nothing persisted.
package workflow

import (
	"foncier/internal/contract/canonical"
	"foncier/internal/contract/models"
	derrors "foncier/pkg/domain-errors"
)

// TxContext carries the non-deterministic inputs a transition needs, as
// injected by the ledger runtime at the boundary.
type TxContext struct {
	Timestamp models.Timestamp
	TxID      string
	Actor     *models.Actor
}

// Engine applies workflow transitions. It is stateless apart from the quorum
// configuration and safe for concurrent use.
type Engine struct {
	quorum Quorum
}

func NewEngine(quorum Quorum) *Engine {
	return &Engine{quorum: quorum}
}

// Quorum exposes the configured signature quorum.
func (e *Engine) Quorum() Quorum { return e.quorum }

// Create initializes a draft from validated input. The caller supplies id,
// creation timestamp, and the code sequence; nothing is generated here.
func (e *Engine) Create(rec *models.ContractRecord, tx TxContext, codeSequence uint64) (*models.ContractRecord, error) {
	if err := rec.ValidateNew(); err != nil {
		return nil, err
	}
	next := rec.Clone()
	if next.Code == "" {
		next.Code = models.GenerateCode(next.Type, next.Parcel.Region, codeSequence)
	}
	next.Status = models.StatusDraft
	next.Metadata.Version = 1
	next.Signatures = []models.PartySignature{}
	next.Approval = nil
	next.Validation = nil
	next.Actions = []models.WorkflowAction{{
		Type:          models.ActionCreate,
		Actor:         tx.Actor,
		Timestamp:     tx.Timestamp,
		NewStatus:     models.StatusDraft,
		TransactionID: tx.TxID,
	}}
	return finalize(next)
}

// Modify replaces the business fields of a modifiable record. Identity,
// creation date, and the accumulated signatures, approval, validation, and
// audit trail of the existing record are preserved.
func (e *Engine) Modify(current *models.ContractRecord, replacement *models.ContractRecord, tx TxContext) (*models.ContractRecord, error) {
	if !current.Modifiable {
		return nil, derrors.Newf(derrors.CodeNotModifiable, "record %s in status %s cannot be modified", current.ID, current.Status)
	}
	if err := replacement.Owner.Validate("owner"); err != nil {
		return nil, err
	}
	if err := replacement.Beneficiary.Validate("beneficiary"); err != nil {
		return nil, err
	}
	if err := replacement.Parcel.Validate(); err != nil {
		return nil, err
	}
	if replacement.Type != "" && !replacement.Type.IsValid() {
		return nil, derrors.Newf(derrors.CodeValidation, "invalid contract type: %s", replacement.Type)
	}

	next := current.Clone()
	next.Owner = replacement.Owner
	next.Beneficiary = replacement.Beneficiary
	next.Parcel = replacement.Parcel
	if replacement.Type != "" {
		next.Type = replacement.Type
	}
	if replacement.Extra != nil {
		next.Extra = replacement.Extra
	}
	return e.transition(next, models.ActionModify, current.Status, tx, "")
}

// AddSignature appends one signature and auto-advances DRAFT to SIGNED when
// the quorum is satisfied. Signatures are never deduplicated: a party signing
// twice leaves both entries in history. Re-evaluating an already SIGNED
// record appends the signature but performs no further transition.
func (e *Engine) AddSignature(current *models.ContractRecord, sig models.PartySignature, tx TxContext) (*models.ContractRecord, error) {
	if current.Status != models.StatusDraft && current.Status != models.StatusSigned {
		return nil, derrors.Newf(derrors.CodeInvalidStatus, "cannot sign record %s in status %s", current.ID, current.Status)
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	next := current.Clone()
	next.Signatures = append(next.Signatures, sig)
	if next.Status == models.StatusDraft && e.quorum.Satisfied(next.Signatures) {
		next.Status = models.StatusSigned
	}
	return e.transition(next, models.ActionSign, current.Status, tx, "")
}

// Approve moves a SIGNED record to APPROVED with the supplied approbation.
func (e *Engine) Approve(current *models.ContractRecord, approval models.ContractApprobation, tx TxContext) (*models.ContractRecord, error) {
	if current.Status != models.StatusSigned {
		return nil, derrors.Newf(derrors.CodeInvalidTransition, "cannot approve record %s in status %s", current.ID, current.Status)
	}
	if err := approval.Validate(); err != nil {
		return nil, err
	}
	approval.ApprovedAt = tx.Timestamp
	approval.TransactionID = tx.TxID

	next := current.Clone()
	next.Status = models.StatusApproved
	next.Approval = &approval
	return e.transition(next, models.ActionApprove, current.Status, tx, approval.Comment)
}

// Validate certifies an APPROVED record. The supplied document hash must be
// re-derivable from the canonical serialization by any third party; once set
// the validation block never changes and the record accepts no further
// mutation.
func (e *Engine) Validate(current *models.ContractRecord, validation models.ContractValidation, tx TxContext) (*models.ContractRecord, error) {
	if current.Status != models.StatusApproved {
		return nil, derrors.Newf(derrors.CodeInvalidTransition, "cannot validate record %s in status %s", current.ID, current.Status)
	}
	if err := validation.Validate(); err != nil {
		return nil, err
	}
	validation.ValidatedAt = tx.Timestamp
	validation.TransactionID = tx.TxID
	if validation.HashAlgorithm == "" {
		validation.HashAlgorithm = canonical.HashAlgorithm
	}

	next := current.Clone()
	next.Status = models.StatusValidated
	next.Validation = &validation
	return e.transition(next, models.ActionValidate, current.Status, tx, "")
}

// Reject sends a DRAFT, SIGNED, or APPROVED record back to REJECTED, making
// it modifiable again.
func (e *Engine) Reject(current *models.ContractRecord, reason string, tx TxContext) (*models.ContractRecord, error) {
	switch current.Status {
	case models.StatusDraft, models.StatusSigned, models.StatusApproved:
	default:
		return nil, derrors.Newf(derrors.CodeInvalidTransition, "cannot reject record %s in status %s", current.ID, current.Status)
	}
	next := current.Clone()
	next.Status = models.StatusRejected
	return e.transition(next, models.ActionReject, current.Status, tx, reason)
}

// SoftDelete transitions to DELETED. The record and its full history remain
// queryable; nothing is physically removed.
func (e *Engine) SoftDelete(current *models.ContractRecord, reason string, tx TxContext) (*models.ContractRecord, error) {
	if !current.Deletable {
		return nil, derrors.Newf(derrors.CodeNotDeletable, "record %s in status %s cannot be deleted", current.ID, current.Status)
	}
	next := current.Clone()
	next.Status = models.StatusDeleted
	return e.transition(next, models.ActionDelete, current.Status, tx, reason)
}

// Archive is an administrative transition available from any non-terminal
// status, independent of the approval pipeline.
func (e *Engine) Archive(current *models.ContractRecord, tx TxContext) (*models.ContractRecord, error) {
	if current.Status.Terminal() || current.Status == models.StatusArchived {
		return nil, derrors.Newf(derrors.CodeInvalidTransition, "cannot archive record %s in status %s", current.ID, current.Status)
	}
	next := current.Clone()
	next.Status = models.StatusArchived
	return e.transition(next, models.ActionArchive, current.Status, tx, "")
}

// transition appends the audit action for a mutation already applied to next,
// bumps the version, and finalizes derived state.
func (e *Engine) transition(next *models.ContractRecord, action models.ActionType, previous models.ContractStatus, tx TxContext, comment string) (*models.ContractRecord, error) {
	next.Actions = append(next.Actions, models.WorkflowAction{
		Type:           action,
		Actor:          tx.Actor,
		Timestamp:      tx.Timestamp,
		PreviousStatus: previous,
		NewStatus:      next.Status,
		TransactionID:  tx.TxID,
		Comment:        comment,
	})
	next.Metadata.Version++
	return finalize(next)
}

// finalize re-derives flags and the content checksum. Called on every path
// that returns a record for persistence.
func finalize(rec *models.ContractRecord) (*models.ContractRecord, error) {
	rec.SyncFlags()
	sum, err := canonical.Checksum(rec)
	if err != nil {
		return nil, err
	}
	rec.Metadata.Checksum = sum
	return rec, nil
}
