package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/numbering"
	"sdo-ticketing/pkg/constants"
	apperrors "sdo-ticketing/pkg/errors"
)

func newRequestServiceForTest(repo *fakeAccountRequestRepo) *AccountRequestService {
	gen := numbering.NewGenerator().
		WithClock(func() time.Time { return testNow }).
		WithRand(rand.New(rand.NewSource(1)))
	return NewAccountRequestService(repo, gen, zap.NewNop()).
		WithClock(func() time.Time { return testNow })
}

func requestPayload() dto.CreateAccountRequestDTO {
	return dto.CreateAccountRequestDTO{
		SelectedType:  "Teaching",
		Surname:       "Reyes",
		FirstName:     "Maria",
		MiddleName:    "Santos",
		Designation:   "Teacher III",
		School:        "San Isidro Elementary",
		SchoolID:      "301234",
		PersonalGmail: "maria.reyes@gmail.com",
	}
}

func resetPayload() dto.CreateResetRequestDTO {
	return dto.CreateResetRequestDTO{
		SelectedType:   "Teaching",
		Surname:        "Reyes",
		FirstName:      "Maria",
		School:         "San Isidro Elementary",
		SchoolID:       "301234",
		EmployeeNumber: "1234567",
	}
}

func TestCreateRequest_NumberFormatAndDefaults(t *testing.T) {
	repo := newFakeAccountRequestRepo()
	svc := newRequestServiceForTest(repo)

	created, err := svc.CreateRequest(context.Background(), requestPayload(), RequestDocuments{
		ProofOfIdentity:   "proof.jpg",
		PrcID:             "prc.pdf",
		EndorsementLetter: "letter.pdf",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^REQ-[A-Z]{2}\d{11}$`, created.RequestNumber)

	stored := repo.requests[created.RequestID]
	assert.Equal(t, constants.RequestStatusPending, stored.Status)
	assert.Equal(t, "Reyes, Maria Santos", stored.Name)
	assert.Equal(t, "proof.jpg", stored.ProofOfIdentity)
	assert.False(t, stored.CompletedAt.Valid)
}

func TestCreateResetRequest_NumberFormat(t *testing.T) {
	repo := newFakeAccountRequestRepo()
	svc := newRequestServiceForTest(repo)

	created, err := svc.CreateResetRequest(context.Background(), resetPayload())
	require.NoError(t, err)

	assert.Regexp(t, `^RST-[A-Z]{3}\d{10}$`, created.RequestNumber)

	stored := repo.resetRequests[created.RequestID]
	assert.Equal(t, "Reyes, Maria", stored.Name)
	assert.Equal(t, constants.RequestStatusPending, stored.Status)
}

func TestUpdateRequestStatus_CompletedStampsCompletedAt(t *testing.T) {
	repo := newFakeAccountRequestRepo()
	svc := newRequestServiceForTest(repo)
	created, err := svc.CreateRequest(context.Background(), requestPayload(), RequestDocuments{})
	require.NoError(t, err)

	err = svc.UpdateRequestStatus(context.Background(), created.RequestID,
		dto.UpdateRequestStatusDTO{Status: "Completed"})
	require.NoError(t, err)

	stored := repo.requests[created.RequestID]
	assert.Equal(t, constants.RequestStatusCompleted, stored.Status)
	require.True(t, stored.CompletedAt.Valid)
	assert.Equal(t, testNow, stored.CompletedAt.Time)

	// Moving back out of Completed clears the stamp.
	err = svc.UpdateRequestStatus(context.Background(), created.RequestID,
		dto.UpdateRequestStatusDTO{Status: "In Progress"})
	require.NoError(t, err)
	assert.False(t, repo.requests[created.RequestID].CompletedAt.Valid)
}

func TestUpdateRequestStatus_RejectKeepsReason(t *testing.T) {
	repo := newFakeAccountRequestRepo()
	svc := newRequestServiceForTest(repo)
	created, err := svc.CreateRequest(context.Background(), requestPayload(), RequestDocuments{})
	require.NoError(t, err)

	err = svc.UpdateRequestStatus(context.Background(), created.RequestID,
		dto.UpdateRequestStatusDTO{Status: "Rejected", Notes: "blurred PRC ID"})
	require.NoError(t, err)

	stored := repo.requests[created.RequestID]
	assert.Equal(t, constants.RequestStatusRejected, stored.Status)
	assert.Equal(t, "blurred PRC ID", stored.RejectReason.String)
	assert.False(t, stored.CompletedAt.Valid)
}

func TestUpdateRequestStatus_UnknownStatusRejected(t *testing.T) {
	repo := newFakeAccountRequestRepo()
	svc := newRequestServiceForTest(repo)
	created, err := svc.CreateRequest(context.Background(), requestPayload(), RequestDocuments{})
	require.NoError(t, err)

	err = svc.UpdateRequestStatus(context.Background(), created.RequestID,
		dto.UpdateRequestStatusDTO{Status: "Archived"})
	requireKind(t, err, apperrors.KindValidation)
}

func TestCheckTransaction_DispatchesOnPrefix(t *testing.T) {
	repo := newFakeAccountRequestRepo()
	svc := newRequestServiceForTest(repo)

	req, err := svc.CreateRequest(context.Background(), requestPayload(), RequestDocuments{})
	require.NoError(t, err)
	reset, err := svc.CreateResetRequest(context.Background(), resetPayload())
	require.NoError(t, err)

	tx, err := svc.CheckTransaction(context.Background(), req.RequestNumber)
	require.NoError(t, err)
	assert.Equal(t, req.RequestNumber, tx.Number)
	assert.Equal(t, "Reyes, Maria Santos", tx.Name)

	tx, err = svc.CheckTransaction(context.Background(), reset.RequestNumber)
	require.NoError(t, err)
	assert.Equal(t, reset.RequestNumber, tx.Number)
}

func TestCheckTransaction_PrefixIsCaseSensitive(t *testing.T) {
	repo := newFakeAccountRequestRepo()
	svc := newRequestServiceForTest(repo)
	req, err := svc.CreateRequest(context.Background(), requestPayload(), RequestDocuments{})
	require.NoError(t, err)

	lowered := "req-" + req.RequestNumber[len("REQ-"):]
	_, err = svc.CheckTransaction(context.Background(), lowered)
	requireKind(t, err, apperrors.KindBadRequest)
}

func TestCheckTransaction_UnknownNumberIs404(t *testing.T) {
	repo := newFakeAccountRequestRepo()
	svc := newRequestServiceForTest(repo)

	_, err := svc.CheckTransaction(context.Background(), "REQ-ZZ00000000000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
