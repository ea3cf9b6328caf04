package models

import (
	derrors "foncier/pkg/domain-errors"
)

// ContractType classifies the legal instrument a record represents.
// Invariant: the value must be one of the supported types.
//
// Usage: construct via ParseContractType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type ContractType string

const (
	TypeAgrarianContract ContractType = "AGRARIAN_CONTRACT"
	TypeLandCertificate  ContractType = "LAND_CERTIFICATE"
	TypeLease            ContractType = "LEASE"
	TypeSale             ContractType = "SALE"
	TypeConcession       ContractType = "CONCESSION"
)

// validContractTypes is the single source of truth for valid contract types.
var validContractTypes = map[ContractType]bool{
	TypeAgrarianContract: true,
	TypeLandCertificate:  true,
	TypeLease:            true,
	TypeSale:             true,
	TypeConcession:       true,
}

// codePrefixes maps a contract type to the prefix used in generated codes.
var codePrefixes = map[ContractType]string{
	TypeAgrarianContract: "CA",
	TypeLandCertificate:  "CF",
	TypeLease:            "BL",
	TypeSale:             "VT",
	TypeConcession:       "CS",
}

// ParseContractType constructs a ContractType from external input.
func ParseContractType(s string) (ContractType, error) {
	if s == "" {
		return "", derrors.New(derrors.CodeValidation, "contract type cannot be empty")
	}
	t := ContractType(s)
	if !t.IsValid() {
		return "", derrors.Newf(derrors.CodeValidation, "invalid contract type: %s", s)
	}
	return t, nil
}

func (t ContractType) IsValid() bool { return validContractTypes[t] }

func (t ContractType) String() string { return string(t) }

// CodePrefix returns the short prefix used when generating contract codes.
func (t ContractType) CodePrefix() string {
	if p, ok := codePrefixes[t]; ok {
		return p
	}
	return "CT"
}

// ContractStatus is the workflow state of a record. Transitions between
// statuses are owned by the workflow package; nothing else may change status.
type ContractStatus string

const (
	StatusDraft     ContractStatus = "DRAFT"
	StatusSigned    ContractStatus = "SIGNED"
	StatusApproved  ContractStatus = "APPROVED"
	StatusValidated ContractStatus = "VALIDATED"
	StatusRejected  ContractStatus = "REJECTED"
	StatusArchived  ContractStatus = "ARCHIVED"
	StatusDeleted   ContractStatus = "DELETED"
)

var validStatuses = map[ContractStatus]bool{
	StatusDraft:     true,
	StatusSigned:    true,
	StatusApproved:  true,
	StatusValidated: true,
	StatusRejected:  true,
	StatusArchived:  true,
	StatusDeleted:   true,
}

func ParseContractStatus(s string) (ContractStatus, error) {
	if s == "" {
		return "", derrors.New(derrors.CodeInvalidStatus, "status cannot be empty")
	}
	st := ContractStatus(s)
	if !st.IsValid() {
		return "", derrors.Newf(derrors.CodeInvalidStatus, "invalid status: %s", s)
	}
	return st, nil
}

func (s ContractStatus) IsValid() bool { return validStatuses[s] }

func (s ContractStatus) String() string { return string(s) }

// Modifiable reports whether business fields may be replaced in this status.
func (s ContractStatus) Modifiable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Deletable reports whether a soft delete is permitted from this status.
func (s ContractStatus) Deletable() bool {
	return s != StatusValidated && s != StatusDeleted
}

// Terminal reports whether the status admits no further workflow transitions.
// DELETED remains readable but accepts no mutation; VALIDATED has no outgoing
// edges at all.
func (s ContractStatus) Terminal() bool {
	return s == StatusValidated || s == StatusDeleted
}

// PartyRole identifies the capacity in which a party signs a contract.
type PartyRole string

const (
	RoleOwner       PartyRole = "OWNER"
	RoleBeneficiary PartyRole = "BENEFICIARY"
	RoleWitness     PartyRole = "WITNESS"
	RoleAuthority   PartyRole = "AUTHORITY"
)

var validPartyRoles = map[PartyRole]bool{
	RoleOwner:       true,
	RoleBeneficiary: true,
	RoleWitness:     true,
	RoleAuthority:   true,
}

func ParsePartyRole(s string) (PartyRole, error) {
	if s == "" {
		return "", derrors.New(derrors.CodeValidation, "party role cannot be empty")
	}
	r := PartyRole(s)
	if !r.IsValid() {
		return "", derrors.Newf(derrors.CodeValidation, "invalid party role: %s", s)
	}
	return r, nil
}

func (r PartyRole) IsValid() bool { return validPartyRoles[r] }

func (r PartyRole) String() string { return string(r) }

// ActionType labels an entry in the audit trail. The set is closed; new
// workflow operations must add their action type here.
type ActionType string

const (
	ActionCreate   ActionType = "CREATE"
	ActionModify   ActionType = "MODIFY"
	ActionSign     ActionType = "SIGN"
	ActionApprove  ActionType = "APPROVE"
	ActionValidate ActionType = "VALIDATE"
	ActionReject   ActionType = "REJECT"
	ActionDelete   ActionType = "DELETE"
	ActionArchive  ActionType = "ARCHIVE"
)

var validActionTypes = map[ActionType]bool{
	ActionCreate:   true,
	ActionModify:   true,
	ActionSign:     true,
	ActionApprove:  true,
	ActionValidate: true,
	ActionReject:   true,
	ActionDelete:   true,
	ActionArchive:  true,
}

func (a ActionType) IsValid() bool { return validActionTypes[a] }

func (a ActionType) String() string { return string(a) }

// AreaUnit is the unit a parcel surface was captured in. Surfaces are
// normalized to square metres before persistence.
type AreaUnit string

const (
	UnitSquareMetre AreaUnit = "M2"
	UnitHectare     AreaUnit = "HECTARE"
	UnitAre         AreaUnit = "ARE"
)

// squareMetresPer holds exact conversion factors to square metres.
var squareMetresPer = map[AreaUnit]float64{
	UnitSquareMetre: 1,
	UnitHectare:     10000,
	UnitAre:         100,
}

func ParseAreaUnit(s string) (AreaUnit, error) {
	if s == "" {
		return "", derrors.New(derrors.CodeValidation, "area unit cannot be empty")
	}
	u := AreaUnit(s)
	if !u.IsValid() {
		return "", derrors.Newf(derrors.CodeValidation, "invalid area unit: %s", s)
	}
	return u, nil
}

func (u AreaUnit) IsValid() bool {
	_, ok := squareMetresPer[u]
	return ok
}

func (u AreaUnit) String() string { return string(u) }
