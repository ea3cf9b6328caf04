package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "foncier/pkg/domain-errors"
)

func validRecord() *ContractRecord {
	return &ContractRecord{
		ID:   "contract-001",
		Type: TypeAgrarianContract,
		Owner: Person{
			Name:     "Mamadou Diallo",
			IDType:   "NATIONAL_ID",
			IDNumber: "GN-123456",
		},
		Beneficiary: Person{
			Name:     "Fatoumata Camara",
			IDType:   "NATIONAL_ID",
			IDNumber: "GN-654321",
		},
		Parcel: Terrain{
			Location:        "Sangaredi",
			Region:          "Boke",
			SurfaceM2:       25000,
			CapturedSurface: 2.5,
			CapturedUnit:    UnitHectare,
		},
		Metadata: Metadata{
			CreationDate: NewTimestamp(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		},
	}
}

func TestValidateNew(t *testing.T) {
	require.NoError(t, validRecord().ValidateNew())

	rec := validRecord()
	rec.ID = "  "
	assert.True(t, derrors.Is(rec.ValidateNew(), derrors.CodeValidation))

	rec = validRecord()
	rec.Parcel.SurfaceM2 = 20000
	assert.True(t, derrors.Is(rec.ValidateNew(), derrors.CodeValidation),
		"surface not matching its captured value and unit must be rejected")

	rec = validRecord()
	rec.Metadata.CreationDate = Timestamp{}
	assert.True(t, derrors.Is(rec.ValidateNew(), derrors.CodeValidation))
}

func TestGenerateCode(t *testing.T) {
	assert.Equal(t, "CA-BOKE-000042", GenerateCode(TypeAgrarianContract, "Boke", 42))
	assert.Equal(t, "CF-NZRK-001205", GenerateCode(TypeLandCertificate, "N'Zérékoré", 1205))
	assert.Equal(t, "BL-XX-000001", GenerateCode(TypeLease, "---", 1))
}

func TestCloneIsIndependent(t *testing.T) {
	rec := validRecord()
	rec.Signatures = []PartySignature{{Role: RoleOwner, PartyName: "Mamadou Diallo", SignatureData: "sig"}}
	rec.Extra = map[string]string{"dossier": "D-88"}

	clone := rec.Clone()
	clone.Signatures[0].PartyName = "changed"
	clone.Signatures = append(clone.Signatures, PartySignature{Role: RoleWitness})
	clone.Extra["dossier"] = "D-99"
	clone.Owner.Name = "someone else"

	assert.Equal(t, "Mamadou Diallo", rec.Signatures[0].PartyName)
	assert.Len(t, rec.Signatures, 1)
	assert.Equal(t, "D-88", rec.Extra["dossier"])
	assert.Equal(t, "Mamadou Diallo", rec.Owner.Name)
}

func TestSyncFlags(t *testing.T) {
	rec := validRecord()
	rec.Status = StatusDraft
	rec.SyncFlags()
	assert.True(t, rec.Modifiable)
	assert.True(t, rec.Deletable)

	rec.Status = StatusValidated
	rec.SyncFlags()
	assert.False(t, rec.Modifiable)
	assert.False(t, rec.Deletable)
}

func TestTimestampWireFormat(t *testing.T) {
	ts := NewTimestamp(time.Date(2026, 3, 10, 9, 15, 42, 999999999, time.FixedZone("GMT+3", 3*3600)))
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-10T06:15:42"`, string(data), "timestamps render in UTC at second precision")

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, ts.Equal(decoded))

	var bad Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"2026-03-10T06:15:42Z"`), &bad),
		"zone suffixes are not part of the wire format")
	assert.Error(t, json.Unmarshal([]byte(`12345`), &bad))
}
