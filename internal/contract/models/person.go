package models

import (
	derrors "foncier/pkg/domain-errors"
)

// Person is a contracting party. It is stored by value inside the record:
// the contract captures who the party was at signing time, not a reference
// into a mutable registry.
type Person struct {
	Name        string     `json:"name"`
	IDType      string     `json:"idType"`
	IDNumber    string     `json:"idNumber"`
	IDDate      *Timestamp `json:"idDate,omitempty"`
	BirthDate   *Timestamp `json:"birthDate,omitempty"`
	BirthPlace  string     `json:"birthPlace,omitempty"`
	FatherName  string     `json:"fatherName,omitempty"`
	MotherName  string     `json:"motherName,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Address     string     `json:"address,omitempty"`
	LegalPerson bool       `json:"legalPerson"`
}

// Validate enforces the identity-proof fields required at creation.
func (p Person) Validate(field string) error {
	if p.Name == "" {
		return derrors.Newf(derrors.CodeValidation, "%s name is required", field)
	}
	if p.IDType == "" || p.IDNumber == "" {
		return derrors.Newf(derrors.CodeValidation, "%s identity document type and number are required", field)
	}
	return nil
}
