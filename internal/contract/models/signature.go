package models

import (
	derrors "foncier/pkg/domain-errors"
)

// Actor is a snapshot of who performed an action. Stored by value so the
// audit trail stays accurate even if the actor's profile changes later.
type Actor struct {
	UserID       string `json:"userId"`
	UserName     string `json:"userName,omitempty"`
	Role         string `json:"role,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// PartySignature is one collected signature. Signatures are append-only:
// a party signing twice leaves two entries, quorum evaluation dedupes by role.
type PartySignature struct {
	Role          PartyRole `json:"role"`
	PartyName     string    `json:"partyName"`
	PartyID       string    `json:"partyId,omitempty"`
	SignatureData string    `json:"signatureData"`
	SignedAt      Timestamp `json:"signedAt"`
	DeviceInfo    string    `json:"deviceInfo,omitempty"`
	GeoLocation   string    `json:"geoLocation,omitempty"`
}

// Validate enforces the fields required before a signature is appended.
func (s PartySignature) Validate() error {
	if !s.Role.IsValid() {
		return derrors.Newf(derrors.CodeValidation, "invalid party role: %s", s.Role)
	}
	if s.PartyName == "" {
		return derrors.New(derrors.CodeValidation, "signing party name is required")
	}
	if s.SignatureData == "" {
		return derrors.New(derrors.CodeMissingSignature, "signature payload is required")
	}
	if s.SignedAt.IsZero() {
		return derrors.New(derrors.CodeValidation, "signature timestamp is required")
	}
	return nil
}

// ContractApprobation records the administrative approval step.
type ContractApprobation struct {
	ApprovedBy           string    `json:"approvedBy"`
	ApproverName         string    `json:"approverName,omitempty"`
	ApproverRole         string    `json:"approverRole"`
	ApproverOrganization string    `json:"approverOrganization,omitempty"`
	ApprovedAt           Timestamp `json:"approvedAt"`
	Comment              string    `json:"comment,omitempty"`
	DigitalSignature     string    `json:"digitalSignature"`
	PublicKeyFingerprint string    `json:"publicKeyFingerprint,omitempty"`
	TransactionID        string    `json:"transactionId,omitempty"`
}

func (a ContractApprobation) Validate() error {
	if a.ApprovedBy == "" {
		return derrors.New(derrors.CodeValidation, "approver identity is required")
	}
	if a.DigitalSignature == "" {
		return derrors.New(derrors.CodeMissingSignature, "approver digital signature is required")
	}
	return nil
}

// ContractValidation is the terminal certification of a record. Once set it
// never changes; the document hash must be re-derivable by any third party
// from the canonical serialization.
type ContractValidation struct {
	ValidatedBy           string    `json:"validatedBy"`
	ValidatorName         string    `json:"validatorName,omitempty"`
	ValidatorRole         string    `json:"validatorRole,omitempty"`
	ValidatorOrganization string    `json:"validatorOrganization,omitempty"`
	ValidatedAt           Timestamp `json:"validatedAt"`
	DocumentHash          string    `json:"documentHash"`
	HashAlgorithm         string    `json:"hashAlgorithm"`
	DigitalSignature      string    `json:"digitalSignature"`
	SignatureAlgorithm    string    `json:"signatureAlgorithm,omitempty"`
	PublicKeyFingerprint  string    `json:"publicKeyFingerprint,omitempty"`
	TransactionID         string    `json:"transactionId,omitempty"`
	VerificationURL       string    `json:"verificationUrl,omitempty"`
}

func (v ContractValidation) Validate() error {
	if v.ValidatedBy == "" {
		return derrors.New(derrors.CodeValidation, "validator identity is required")
	}
	if v.DocumentHash == "" {
		return derrors.New(derrors.CodeMissingHash, "document hash is required")
	}
	if v.DigitalSignature == "" {
		return derrors.New(derrors.CodeMissingSignature, "validator digital signature is required")
	}
	return nil
}
