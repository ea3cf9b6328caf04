package workflow

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"foncier/internal/contract/canonical"
	"foncier/internal/contract/models"
	derrors "foncier/pkg/domain-errors"
)

type WorkflowSuite struct {
	suite.Suite
	engine *Engine
	txSeq  int
}

func (s *WorkflowSuite) SetupTest() {
	s.engine = NewEngine(NewQuorum())
	s.txSeq = 0
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

// nextTx yields deterministic, strictly increasing transaction contexts.
func (s *WorkflowSuite) nextTx() TxContext {
	s.txSeq++
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return TxContext{
		Timestamp: models.NewTimestamp(base.Add(time.Duration(s.txSeq) * time.Minute)),
		TxID:      fmt.Sprintf("tx-%03d", s.txSeq),
		Actor:     &models.Actor{UserID: "agent-7", Organization: "AFOR"},
	}
}

func (s *WorkflowSuite) newDraftInput() *models.ContractRecord {
	return &models.ContractRecord{
		ID:   "contract-001",
		Type: models.TypeAgrarianContract,
		Owner: models.Person{
			Name:     "Mamadou Diallo",
			IDType:   "NATIONAL_ID",
			IDNumber: "GN-123456",
		},
		Beneficiary: models.Person{
			Name:     "Fatoumata Camara",
			IDType:   "NATIONAL_ID",
			IDNumber: "GN-654321",
		},
		Parcel: models.Terrain{
			Location:        "Sangaredi",
			Region:          "Boke",
			SurfaceM2:       25000,
			CapturedSurface: 2.5,
			CapturedUnit:    models.UnitHectare,
		},
		Metadata: models.Metadata{
			CreatedByOrg: "AFOR",
			CreationDate: models.NewTimestamp(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		},
	}
}

func (s *WorkflowSuite) create() *models.ContractRecord {
	rec, err := s.engine.Create(s.newDraftInput(), s.nextTx(), 42)
	require.NoError(s.T(), err)
	return rec
}

func (s *WorkflowSuite) sign(rec *models.ContractRecord, role models.PartyRole, name string) *models.ContractRecord {
	tx := s.nextTx()
	next, err := s.engine.AddSignature(rec, models.PartySignature{
		Role:          role,
		PartyName:     name,
		SignatureData: "sig-" + name,
		SignedAt:      tx.Timestamp,
	}, tx)
	require.NoError(s.T(), err)
	return next
}

func (s *WorkflowSuite) toSigned() *models.ContractRecord {
	rec := s.create()
	rec = s.sign(rec, models.RoleOwner, "Mamadou Diallo")
	return s.sign(rec, models.RoleBeneficiary, "Fatoumata Camara")
}

func (s *WorkflowSuite) toApproved() *models.ContractRecord {
	rec, err := s.engine.Approve(s.toSigned(), models.ContractApprobation{
		ApprovedBy:       "approver-1",
		ApproverRole:     "LAND_OFFICER",
		DigitalSignature: "approval-sig",
	}, s.nextTx())
	require.NoError(s.T(), err)
	return rec
}

func (s *WorkflowSuite) TestCreateInitializesDraft() {
	rec := s.create()

	assert.Equal(s.T(), models.StatusDraft, rec.Status)
	assert.Equal(s.T(), int64(1), rec.Metadata.Version)
	assert.True(s.T(), rec.Modifiable)
	assert.True(s.T(), rec.Deletable)
	assert.Empty(s.T(), rec.Signatures)
	require.Len(s.T(), rec.Actions, 1)
	assert.Equal(s.T(), models.ActionCreate, rec.Actions[0].Type)
	assert.Equal(s.T(), models.StatusDraft, rec.Actions[0].NewStatus)
	assert.NotEmpty(s.T(), rec.Metadata.Checksum)
}

func (s *WorkflowSuite) TestCreateGeneratesCodeFromSequence() {
	rec := s.create()
	assert.Equal(s.T(), "CA-BOKE-000042", rec.Code)
}

func (s *WorkflowSuite) TestCreateKeepsExplicitCode() {
	input := s.newDraftInput()
	input.Code = "CA-CUSTOM-000001"
	rec, err := s.engine.Create(input, s.nextTx(), 42)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "CA-CUSTOM-000001", rec.Code)
}

func (s *WorkflowSuite) TestCreateRejectsMissingOwnerIdentity() {
	input := s.newDraftInput()
	input.Owner.IDNumber = ""
	_, err := s.engine.Create(input, s.nextTx(), 42)
	assert.True(s.T(), derrors.Is(err, derrors.CodeValidation))
}

func (s *WorkflowSuite) TestSingleSignatureKeepsDraft() {
	rec := s.create()
	rec = s.sign(rec, models.RoleOwner, "Mamadou Diallo")

	assert.Equal(s.T(), models.StatusDraft, rec.Status)
	assert.Len(s.T(), rec.Signatures, 1)
	assert.Equal(s.T(), int64(2), rec.Metadata.Version)
}

func (s *WorkflowSuite) TestQuorumAdvancesToSigned() {
	rec := s.toSigned()

	assert.Equal(s.T(), models.StatusSigned, rec.Status)
	assert.False(s.T(), rec.Modifiable)
	require.Len(s.T(), rec.Actions, 3)
	assert.Equal(s.T(), models.StatusDraft, rec.Actions[2].PreviousStatus)
	assert.Equal(s.T(), models.StatusSigned, rec.Actions[2].NewStatus)
}

func (s *WorkflowSuite) TestDuplicateRoleSignaturesAreKept() {
	rec := s.create()
	rec = s.sign(rec, models.RoleOwner, "Mamadou Diallo")
	rec = s.sign(rec, models.RoleOwner, "Mamadou Diallo")

	assert.Equal(s.T(), models.StatusDraft, rec.Status)
	assert.Len(s.T(), rec.Signatures, 2)
}

func (s *WorkflowSuite) TestSigningAfterSignedAppendsWithoutTransition() {
	rec := s.toSigned()
	rec = s.sign(rec, models.RoleWitness, "Ibrahima Sow")

	assert.Equal(s.T(), models.StatusSigned, rec.Status)
	assert.Len(s.T(), rec.Signatures, 3)
}

func (s *WorkflowSuite) TestSignRejectedAfterApproval() {
	rec := s.toApproved()
	tx := s.nextTx()
	_, err := s.engine.AddSignature(rec, models.PartySignature{
		Role:          models.RoleWitness,
		PartyName:     "Ibrahima Sow",
		SignatureData: "late-sig",
		SignedAt:      tx.Timestamp,
	}, tx)
	assert.True(s.T(), derrors.Is(err, derrors.CodeInvalidStatus),
		"signing outside DRAFT or SIGNED reports the status itself, not a transition")
}

func (s *WorkflowSuite) TestModifyDraftReplacesBusinessFields() {
	rec := s.create()
	replacement := s.newDraftInput()
	replacement.Parcel.Location = "Kamsar"
	replacement.Parcel.CapturedSurface = 3
	replacement.Parcel.SurfaceM2 = 30000

	next, err := s.engine.Modify(rec, replacement, s.nextTx())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Kamsar", next.Parcel.Location)
	assert.Equal(s.T(), float64(30000), next.Parcel.SurfaceM2)
	assert.Equal(s.T(), int64(2), next.Metadata.Version)
	// The prior state is untouched.
	assert.Equal(s.T(), "Sangaredi", rec.Parcel.Location)
}

func (s *WorkflowSuite) TestModifySignedFails() {
	rec := s.toSigned()
	_, err := s.engine.Modify(rec, s.newDraftInput(), s.nextTx())
	assert.True(s.T(), derrors.Is(err, derrors.CodeNotModifiable))
}

func (s *WorkflowSuite) TestRejectReopensModification() {
	rec := s.toSigned()
	rejected, err := s.engine.Reject(rec, "boundary dispute", s.nextTx())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), models.StatusRejected, rejected.Status)
	assert.True(s.T(), rejected.Modifiable)
	last := rejected.Actions[len(rejected.Actions)-1]
	assert.Equal(s.T(), "boundary dispute", last.Comment)

	_, err = s.engine.Modify(rejected, s.newDraftInput(), s.nextTx())
	assert.NoError(s.T(), err)
}

func (s *WorkflowSuite) TestApproveRequiresSigned() {
	rec := s.create()
	_, err := s.engine.Approve(rec, models.ContractApprobation{
		ApprovedBy:       "approver-1",
		DigitalSignature: "sig",
	}, s.nextTx())
	assert.True(s.T(), derrors.Is(err, derrors.CodeInvalidTransition))
}

func (s *WorkflowSuite) TestApproveStampsTransaction() {
	tx := s.nextTx()
	rec, err := s.engine.Approve(s.toSigned(), models.ContractApprobation{
		ApprovedBy:       "approver-1",
		ApproverRole:     "LAND_OFFICER",
		DigitalSignature: "approval-sig",
	}, tx)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), models.StatusApproved, rec.Status)
	require.NotNil(s.T(), rec.Approval)
	assert.Equal(s.T(), tx.TxID, rec.Approval.TransactionID)
	assert.True(s.T(), rec.Approval.ApprovedAt.Equal(tx.Timestamp))
}

func (s *WorkflowSuite) TestValidateRequiresHashAndSignature() {
	rec := s.toApproved()

	_, err := s.engine.Validate(rec, models.ContractValidation{
		ValidatedBy:      "validator-1",
		DigitalSignature: "sig",
	}, s.nextTx())
	assert.True(s.T(), derrors.Is(err, derrors.CodeMissingHash))

	_, err = s.engine.Validate(rec, models.ContractValidation{
		ValidatedBy:  "validator-1",
		DocumentHash: "abc123",
	}, s.nextTx())
	assert.True(s.T(), derrors.Is(err, derrors.CodeMissingSignature))
}

func (s *WorkflowSuite) TestValidateSealsRecord() {
	rec := s.toApproved()
	validated, err := s.engine.Validate(rec, models.ContractValidation{
		ValidatedBy:      "validator-1",
		DocumentHash:     "abc123",
		DigitalSignature: "validation-sig",
	}, s.nextTx())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), models.StatusValidated, validated.Status)
	assert.Equal(s.T(), canonical.HashAlgorithm, validated.Validation.HashAlgorithm)
	assert.False(s.T(), validated.Modifiable)
	assert.False(s.T(), validated.Deletable)

	_, err = s.engine.SoftDelete(validated, "cleanup", s.nextTx())
	assert.True(s.T(), derrors.Is(err, derrors.CodeNotDeletable))
	_, err = s.engine.Archive(validated, s.nextTx())
	assert.True(s.T(), derrors.Is(err, derrors.CodeInvalidTransition))
}

func (s *WorkflowSuite) TestSoftDeleteKeepsRecordContent() {
	rec := s.create()
	deleted, err := s.engine.SoftDelete(rec, "entered in error", s.nextTx())
	require.NoError(s.T(), err)

	assert.Equal(s.T(), models.StatusDeleted, deleted.Status)
	assert.Equal(s.T(), rec.Owner, deleted.Owner)
	last := deleted.Actions[len(deleted.Actions)-1]
	assert.Equal(s.T(), "entered in error", last.Comment)

	_, err = s.engine.SoftDelete(deleted, "again", s.nextTx())
	assert.True(s.T(), derrors.Is(err, derrors.CodeNotDeletable))
}

func (s *WorkflowSuite) TestArchiveFromRejected() {
	rejected, err := s.engine.Reject(s.toSigned(), "stale", s.nextTx())
	require.NoError(s.T(), err)

	archived, err := s.engine.Archive(rejected, s.nextTx())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusArchived, archived.Status)

	_, err = s.engine.Archive(archived, s.nextTx())
	assert.True(s.T(), derrors.Is(err, derrors.CodeInvalidTransition))
}

func (s *WorkflowSuite) TestVersionAndTrailGrowTogether() {
	rec := s.toApproved()
	validated, err := s.engine.Validate(rec, models.ContractValidation{
		ValidatedBy:      "validator-1",
		DocumentHash:     "abc123",
		DigitalSignature: "validation-sig",
	}, s.nextTx())
	require.NoError(s.T(), err)

	// create, two signatures, approve, validate.
	assert.Equal(s.T(), int64(5), validated.Metadata.Version)
	assert.Len(s.T(), validated.Actions, 5)
	for i, action := range validated.Actions {
		if i == 0 {
			continue
		}
		assert.False(s.T(), action.Timestamp.Before(validated.Actions[i-1].Timestamp.Time),
			"audit trail must be chronologically ordered")
	}
}

func (s *WorkflowSuite) TestChecksumMatchesRecomputation() {
	rec := s.toSigned()
	sum, err := canonical.Checksum(rec)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), rec.Metadata.Checksum, sum)
}

func (s *WorkflowSuite) TestFailedGuardLeavesInputUntouched() {
	rec := s.toSigned()
	before, err := canonical.MarshalRecord(rec)
	require.NoError(s.T(), err)

	_, err = s.engine.Modify(rec, s.newDraftInput(), s.nextTx())
	require.Error(s.T(), err)

	after, err := canonical.MarshalRecord(rec)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), before, after)
}

func (s *WorkflowSuite) TestReplayProducesIdenticalBytes() {
	first := s.toSigned()
	s.txSeq = 0
	second := s.toSigned()

	a, err := canonical.MarshalRecord(first)
	require.NoError(s.T(), err)
	b, err := canonical.MarshalRecord(second)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), a, b)
}
