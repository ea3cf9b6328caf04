package handler

import (
	"github.com/asaskevich/govalidator"

	"foncier/internal/contract/models"
	"foncier/internal/contract/service"
	derrors "foncier/pkg/domain-errors"
)

type personPayload struct {
	Name        string `json:"name"`
	IDType      string `json:"idType"`
	IDNumber    string `json:"idNumber"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	BirthPlace  string `json:"birthPlace,omitempty"`
	FatherName  string `json:"fatherName,omitempty"`
	MotherName  string `json:"motherName,omitempty"`
	LegalPerson bool   `json:"legalPerson"`
}

func (p personPayload) toModel() models.Person {
	return models.Person{
		Name:        p.Name,
		IDType:      p.IDType,
		IDNumber:    p.IDNumber,
		PhoneNumber: p.PhoneNumber,
		Address:     p.Address,
		BirthPlace:  p.BirthPlace,
		FatherName:  p.FatherName,
		MotherName:  p.MotherName,
		LegalPerson: p.LegalPerson,
	}
}

func (p personPayload) validate(field string) error {
	if !govalidator.StringLength(p.Name, "1", "100") {
		return derrors.Newf(derrors.CodeValidation, "%s name must be 1-100 characters", field)
	}
	if !govalidator.StringLength(p.IDType, "1", "30") || !govalidator.StringLength(p.IDNumber, "1", "50") {
		return derrors.Newf(derrors.CodeValidation, "%s identity document type and number are required", field)
	}
	return nil
}

type parcelPayload struct {
	Location        string  `json:"location"`
	Region          string  `json:"region"`
	Village         string  `json:"village,omitempty"`
	Surface         float64 `json:"surface"`
	Unit            string  `json:"unit"`
	SurfaceMethod   string  `json:"surfaceMethod,omitempty"`
	LegalStatus     string  `json:"legalStatus,omitempty"`
	AuthorizedUse   string  `json:"authorizedUse,omitempty"`
	LandTitleRef    string  `json:"landTitleRef,omitempty"`
	LandCertificate string  `json:"landCertificate,omitempty"`
	SketchAvailable bool    `json:"sketchAvailable"`
}

func (p parcelPayload) toModel() (models.Terrain, error) {
	unit, err := models.ParseAreaUnit(p.Unit)
	if err != nil {
		return models.Terrain{}, err
	}
	return models.Terrain{
		Location:        p.Location,
		Region:          p.Region,
		Village:         p.Village,
		CapturedSurface: p.Surface,
		CapturedUnit:    unit,
		SurfaceMethod:   p.SurfaceMethod,
		LegalStatus:     p.LegalStatus,
		AuthorizedUse:   p.AuthorizedUse,
		LandTitleRef:    p.LandTitleRef,
		LandCertificate: p.LandCertificate,
		SketchAvailable: p.SketchAvailable,
	}, nil
}

func (p parcelPayload) validate() error {
	if !govalidator.StringLength(p.Location, "1", "200") {
		return derrors.New(derrors.CodeValidation, "parcel location must be 1-200 characters")
	}
	if !govalidator.StringLength(p.Region, "1", "100") {
		return derrors.New(derrors.CodeValidation, "parcel region must be 1-100 characters")
	}
	if p.Surface <= 0 {
		return derrors.New(derrors.CodeValidation, "parcel surface must be strictly positive")
	}
	return nil
}

type createRequest struct {
	ID           string            `json:"id"`
	Code         string            `json:"code,omitempty"`
	Type         string            `json:"type"`
	Owner        personPayload     `json:"owner"`
	Beneficiary  personPayload     `json:"beneficiary"`
	Parcel       parcelPayload     `json:"parcel"`
	Extra        map[string]string `json:"extra,omitempty"`
	CodeSequence uint64            `json:"codeSequence,omitempty"`
}

func (r createRequest) toInput() (service.CreateInput, error) {
	if !govalidator.StringLength(r.ID, "1", "50") {
		return service.CreateInput{}, derrors.New(derrors.CodeValidation, "record id must be 1-50 characters")
	}
	contractType, err := models.ParseContractType(r.Type)
	if err != nil {
		return service.CreateInput{}, err
	}
	if err := r.Owner.validate("owner"); err != nil {
		return service.CreateInput{}, err
	}
	if err := r.Beneficiary.validate("beneficiary"); err != nil {
		return service.CreateInput{}, err
	}
	if err := r.Parcel.validate(); err != nil {
		return service.CreateInput{}, err
	}
	parcel, err := r.Parcel.toModel()
	if err != nil {
		return service.CreateInput{}, err
	}
	return service.CreateInput{
		ID:           r.ID,
		Code:         r.Code,
		Type:         contractType,
		Owner:        r.Owner.toModel(),
		Beneficiary:  r.Beneficiary.toModel(),
		Parcel:       parcel,
		Extra:        r.Extra,
		CodeSequence: r.CodeSequence,
	}, nil
}

type modifyRequest struct {
	Type        string            `json:"type"`
	Owner       personPayload     `json:"owner"`
	Beneficiary personPayload     `json:"beneficiary"`
	Parcel      parcelPayload     `json:"parcel"`
	Extra       map[string]string `json:"extra,omitempty"`
}

func (r modifyRequest) toInput() (service.ModifyInput, error) {
	contractType, err := models.ParseContractType(r.Type)
	if err != nil {
		return service.ModifyInput{}, err
	}
	if err := r.Owner.validate("owner"); err != nil {
		return service.ModifyInput{}, err
	}
	if err := r.Beneficiary.validate("beneficiary"); err != nil {
		return service.ModifyInput{}, err
	}
	if err := r.Parcel.validate(); err != nil {
		return service.ModifyInput{}, err
	}
	parcel, err := r.Parcel.toModel()
	if err != nil {
		return service.ModifyInput{}, err
	}
	return service.ModifyInput{
		Type:        contractType,
		Owner:       r.Owner.toModel(),
		Beneficiary: r.Beneficiary.toModel(),
		Parcel:      parcel,
		Extra:       r.Extra,
	}, nil
}

type signatureRequest struct {
	Role          string `json:"role"`
	PartyName     string `json:"partyName"`
	PartyID       string `json:"partyId,omitempty"`
	SignatureData string `json:"signatureData"`
	DeviceInfo    string `json:"deviceInfo,omitempty"`
	GeoLocation   string `json:"geoLocation,omitempty"`
}

func (r signatureRequest) toModel() (models.PartySignature, error) {
	role, err := models.ParsePartyRole(r.Role)
	if err != nil {
		return models.PartySignature{}, err
	}
	if !govalidator.StringLength(r.PartyName, "1", "100") {
		return models.PartySignature{}, derrors.New(derrors.CodeValidation, "signing party name must be 1-100 characters")
	}
	if r.SignatureData == "" {
		return models.PartySignature{}, derrors.New(derrors.CodeMissingSignature, "signature payload is required")
	}
	return models.PartySignature{
		Role:          role,
		PartyName:     r.PartyName,
		PartyID:       r.PartyID,
		SignatureData: r.SignatureData,
		DeviceInfo:    r.DeviceInfo,
		GeoLocation:   r.GeoLocation,
	}, nil
}

type approveRequest struct {
	ApprovedBy           string `json:"approvedBy"`
	ApproverName         string `json:"approverName,omitempty"`
	ApproverRole         string `json:"approverRole"`
	ApproverOrganization string `json:"approverOrganization,omitempty"`
	Comment              string `json:"comment,omitempty"`
	DigitalSignature     string `json:"digitalSignature"`
	PublicKeyFingerprint string `json:"publicKeyFingerprint,omitempty"`
}

func (r approveRequest) toModel() models.ContractApprobation {
	return models.ContractApprobation{
		ApprovedBy:           r.ApprovedBy,
		ApproverName:         r.ApproverName,
		ApproverRole:         r.ApproverRole,
		ApproverOrganization: r.ApproverOrganization,
		Comment:              r.Comment,
		DigitalSignature:     r.DigitalSignature,
		PublicKeyFingerprint: r.PublicKeyFingerprint,
	}
}

type validateRequest struct {
	ValidatedBy           string `json:"validatedBy"`
	ValidatorName         string `json:"validatorName,omitempty"`
	ValidatorRole         string `json:"validatorRole,omitempty"`
	ValidatorOrganization string `json:"validatorOrganization,omitempty"`
	DocumentHash          string `json:"documentHash"`
	DigitalSignature      string `json:"digitalSignature"`
	SignatureAlgorithm    string `json:"signatureAlgorithm,omitempty"`
	PublicKeyFingerprint  string `json:"publicKeyFingerprint,omitempty"`
	VerificationURL       string `json:"verificationUrl,omitempty"`
}

func (r validateRequest) toModel() models.ContractValidation {
	return models.ContractValidation{
		ValidatedBy:           r.ValidatedBy,
		ValidatorName:         r.ValidatorName,
		ValidatorRole:         r.ValidatorRole,
		ValidatorOrganization: r.ValidatorOrganization,
		DocumentHash:          r.DocumentHash,
		DigitalSignature:      r.DigitalSignature,
		SignatureAlgorithm:    r.SignatureAlgorithm,
		PublicKeyFingerprint:  r.PublicKeyFingerprint,
		VerificationURL:       r.VerificationURL,
	}
}

type reasonRequest struct {
	Reason string `json:"reason"`
}
