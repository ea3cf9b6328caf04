package models

import (
	"fmt"
	"strings"

	derrors "foncier/pkg/domain-errors"
)

// Metadata tracks provenance and the mutation counter. Version increases by
// exactly one per successful mutation; the checksum is the canonical hash of
// the record content and is recomputed on every write.
type Metadata struct {
	CreatedByOrg  string    `json:"createdByOrg"`
	CreatedByUser string    `json:"createdByUser"`
	CreationDate  Timestamp `json:"creationDate"`
	Version       int64     `json:"version"`
	Checksum      string    `json:"checksum,omitempty"`
}

// ContractRecord is the central entity: a rural land contract or certificate
// shared across mutually distrusting organizations. It owns its signatures
// and actions outright; nothing here is a shared reference.
//
// The record is persisted as its canonical serialization under key = ID.
// All mutation goes through the workflow package so that status, the derived
// flags, and the audit trail never drift apart.
type ContractRecord struct {
	ID          string               `json:"id"`
	Code        string               `json:"code"`
	Type        ContractType         `json:"type"`
	Status      ContractStatus       `json:"status"`
	Owner       Person               `json:"owner"`
	Beneficiary Person               `json:"beneficiary"`
	Parcel      Terrain              `json:"parcel"`
	Signatures  []PartySignature     `json:"signatures"`
	Approval    *ContractApprobation `json:"approval,omitempty"`
	Validation  *ContractValidation  `json:"validation,omitempty"`
	Actions     []WorkflowAction     `json:"actions"`
	Metadata    Metadata             `json:"metadata"`
	Modifiable  bool                 `json:"modifiable"`
	Deletable   bool                 `json:"deletable"`
	Extra       map[string]string    `json:"extra,omitempty"`
}

// ValidateNew enforces the creation guard: id, identity-proof fields, and a
// well-formed parcel must be present before anything is persisted.
func (r *ContractRecord) ValidateNew() error {
	if strings.TrimSpace(r.ID) == "" {
		return derrors.New(derrors.CodeValidation, "record id is required")
	}
	if !r.Type.IsValid() {
		return derrors.Newf(derrors.CodeValidation, "invalid contract type: %s", r.Type)
	}
	if err := r.Owner.Validate("owner"); err != nil {
		return err
	}
	if err := r.Beneficiary.Validate("beneficiary"); err != nil {
		return err
	}
	if err := r.Parcel.Validate(); err != nil {
		return err
	}
	if r.Metadata.CreationDate.IsZero() {
		return derrors.New(derrors.CodeValidation, "creation timestamp must be supplied by the caller")
	}
	return nil
}

// GenerateCode derives the human-readable code from type, region, and a
// caller-supplied sequence. The sequence comes from the gateway, not a local
// clock or RNG, so every replica generates the same code.
func GenerateCode(t ContractType, region string, sequence uint64) string {
	return fmt.Sprintf("%s-%s-%06d", t.CodePrefix(), regionCode(region), sequence)
}

// regionCode compresses a region name into a stable uppercase slug.
func regionCode(region string) string {
	cleaned := make([]rune, 0, len(region))
	for _, r := range strings.ToUpper(region) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) == 0 {
		return "XX"
	}
	if len(cleaned) > 4 {
		cleaned = cleaned[:4]
	}
	return string(cleaned)
}

// Clone returns a deep copy. Workflow operations mutate the copy and leave
// the prior state untouched, which keeps failed guards free of side effects.
func (r *ContractRecord) Clone() *ContractRecord {
	out := *r
	out.Signatures = append([]PartySignature(nil), r.Signatures...)
	out.Actions = append([]WorkflowAction(nil), r.Actions...)
	if r.Approval != nil {
		approval := *r.Approval
		out.Approval = &approval
	}
	if r.Validation != nil {
		validation := *r.Validation
		out.Validation = &validation
	}
	if r.Extra != nil {
		out.Extra = make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// SyncFlags re-derives the persisted modifiable/deletable flags from status.
// Flags are stored alongside status so replicas never disagree on a
// recomputation.
func (r *ContractRecord) SyncFlags() {
	r.Modifiable = r.Status.Modifiable()
	r.Deletable = r.Status.Deletable()
}
