package models

import (
	derrors "foncier/pkg/domain-errors"
)

// Terrain is the parcel a contract bears on. Surface is persisted in square
// metres only; the unit the surveyor captured is kept for provenance.
type Terrain struct {
	Location          string   `json:"location"`
	Region            string   `json:"region"`
	Village           string   `json:"village,omitempty"`
	SurfaceM2         float64  `json:"surfaceM2"`
	CapturedSurface   float64  `json:"capturedSurface"`
	CapturedUnit      AreaUnit `json:"capturedUnit"`
	SurfaceMethod     string   `json:"surfaceMethod,omitempty"`
	LegalStatus       string   `json:"legalStatus,omitempty"`
	AuthorizedUse     string   `json:"authorizedUse,omitempty"`
	LandTitleRef      string   `json:"landTitleRef,omitempty"`
	LandCertificate   string   `json:"landCertificate,omitempty"`
	SketchAvailable   bool     `json:"sketchAvailable"`
	NatureOfServitude string   `json:"natureOfServitude,omitempty"`
}

// NormalizeSurface converts the captured surface into square metres.
// The conversion is exact for the supported units and idempotent: a terrain
// already expressed in M2 converts to itself.
func NormalizeSurface(value float64, unit AreaUnit) (float64, error) {
	factor, ok := squareMetresPer[unit]
	if !ok {
		return 0, derrors.Newf(derrors.CodeValidation, "invalid area unit: %s", unit)
	}
	return value * factor, nil
}

// Validate enforces the parcel invariants at creation and modification.
func (t Terrain) Validate() error {
	if t.Location == "" {
		return derrors.New(derrors.CodeValidation, "parcel location is required")
	}
	if t.Region == "" {
		return derrors.New(derrors.CodeValidation, "parcel region is required")
	}
	if !t.CapturedUnit.IsValid() {
		return derrors.Newf(derrors.CodeValidation, "invalid area unit: %s", t.CapturedUnit)
	}
	if t.CapturedSurface <= 0 {
		return derrors.New(derrors.CodeValidation, "parcel surface must be strictly positive")
	}
	expected, err := NormalizeSurface(t.CapturedSurface, t.CapturedUnit)
	if err != nil {
		return err
	}
	if t.SurfaceM2 != expected {
		return derrors.New(derrors.CodeValidation, "parcel surface normalization mismatch")
	}
	return nil
}
