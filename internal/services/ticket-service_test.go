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
	"sdo-ticketing/internal/entities"
	"sdo-ticketing/internal/numbering"
	"sdo-ticketing/pkg/constants"
	apperrors "sdo-ticketing/pkg/errors"
)

var testNow = time.Date(2026, 8, 28, 10, 30, 0, 0, time.Local)

func newTicketServiceForTest(tickets *fakeTicketRepo, batches *fakeBatchRepo) *TicketService {
	gen := numbering.NewGenerator().
		WithClock(func() time.Time { return testNow }).
		WithRand(rand.New(rand.NewSource(1)))
	return NewTicketService(tickets, batches, gen, zap.NewNop()).
		WithClock(func() time.Time { return testNow })
}

func hardwarePayload(batchID uint64, devices ...dto.DeviceSelectionDTO) dto.CreateTicketDTO {
	return dto.CreateTicketDTO{
		Requestor:       "school301234",
		Category:        constants.CategoryHardware,
		Request:         "Broken keyboard",
		BatchID:         &batchID,
		SelectedDevices: devices,
	}
}

func seedBatch(batches *fakeBatchRepo, id uint64) {
	batches.batches[id] = &entities.Batch{ID: id, SchoolCode: "301234", Status: "Delivered"}
}

func TestTicketCreate_HardwareRequiresBatch(t *testing.T) {
	svc := newTicketServiceForTest(newFakeTicketRepo(), newFakeBatchRepo())

	_, err := svc.Create(context.Background(), dto.CreateTicketDTO{
		Requestor: "school301234",
		Category:  constants.CategoryHardware,
		Request:   "Broken keyboard",
	}, nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindValidation, httpErr.Kind)
}

func TestTicketCreate_SoftwareNeedsNoBatch(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := newTicketServiceForTest(tickets, newFakeBatchRepo())

	created, err := svc.Create(context.Background(), dto.CreateTicketDTO{
		Requestor: "school301234",
		Category:  constants.CategorySoftware,
		Request:   "LIS account locked",
	}, nil)
	require.NoError(t, err)

	stored := tickets.tickets[created.TicketID]
	assert.Equal(t, constants.TicketStatusPending, stored.Status)
	assert.False(t, stored.BatchID.Valid)
	assert.Regexp(t, `^\d{11}$`, created.TicketNumber)
}

func TestTicketCreate_SkipsUnresolvableSerials(t *testing.T) {
	tickets := newFakeTicketRepo()
	batches := newFakeBatchRepo()
	seedBatch(batches, 5)
	tickets.addDevice(5, "SN-GOOD", 77)
	svc := newTicketServiceForTest(tickets, batches)

	created, err := svc.Create(context.Background(), hardwarePayload(5,
		dto.DeviceSelectionDTO{SerialNumber: "SN-GOOD", Description: "no power"},
		dto.DeviceSelectionDTO{SerialNumber: "SN-GHOST", Description: "screen"},
	), nil)
	require.NoError(t, err)
	require.NotZero(t, created.TicketID)

	// Only the resolvable serial becomes an association.
	require.Len(t, tickets.savedLinks, 1)
	assert.Equal(t, uint64(77), tickets.savedLinks[0].BatchDevicesID)
	assert.Equal(t, "no power", tickets.savedLinks[0].IssueDescription)
}

func TestTicketCreate_FailsWhenNothingResolves(t *testing.T) {
	tickets := newFakeTicketRepo()
	batches := newFakeBatchRepo()
	seedBatch(batches, 5)
	svc := newTicketServiceForTest(tickets, batches)

	_, err := svc.Create(context.Background(), hardwarePayload(5,
		dto.DeviceSelectionDTO{SerialNumber: "SN-GHOST"},
	), nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindNoValidDevices, httpErr.Kind)
	assert.Empty(t, tickets.tickets, "ticket must not be created")
}

func TestTicketCreate_SerialFromAnotherBatchDoesNotResolve(t *testing.T) {
	tickets := newFakeTicketRepo()
	batches := newFakeBatchRepo()
	seedBatch(batches, 5)
	tickets.addDevice(6, "SN-OTHER", 90) // exists, but under batch 6
	svc := newTicketServiceForTest(tickets, batches)

	_, err := svc.Create(context.Background(), hardwarePayload(5,
		dto.DeviceSelectionDTO{SerialNumber: "SN-OTHER"},
	), nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindNoValidDevices, httpErr.Kind)
}

func TestTicketUpdateStatus_CompletedStampsClosedAt(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.tickets[1] = &entities.Ticket{ID: 1, Status: constants.TicketStatusPending}
	tickets.nextID = 2
	svc := newTicketServiceForTest(tickets, newFakeBatchRepo())

	err := svc.UpdateStatus(context.Background(), 1, dto.UpdateTicketStatusDTO{Status: "Completed"})
	require.NoError(t, err)

	stored := tickets.tickets[1]
	assert.Equal(t, constants.TicketStatusCompleted, stored.Status)
	require.True(t, stored.ClosedAt.Valid)
	assert.Equal(t, testNow, stored.ClosedAt.Time)
}

func TestTicketUpdateStatus_ReopeningClearsClosedAt(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.tickets[1] = &entities.Ticket{ID: 1, Status: constants.TicketStatusPending}
	tickets.nextID = 2
	svc := newTicketServiceForTest(tickets, newFakeBatchRepo())

	require.NoError(t, svc.UpdateStatus(context.Background(), 1, dto.UpdateTicketStatusDTO{Status: "Completed"}))
	require.NoError(t, svc.UpdateStatus(context.Background(), 1, dto.UpdateTicketStatusDTO{Status: "In Progress"}))

	stored := tickets.tickets[1]
	assert.Equal(t, constants.TicketStatusInProgress, stored.Status)
	assert.False(t, stored.ClosedAt.Valid)
}

func TestTicketUpdateStatus_UnknownStatusRejected(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.tickets[1] = &entities.Ticket{ID: 1, Status: constants.TicketStatusPending}
	svc := newTicketServiceForTest(tickets, newFakeBatchRepo())

	err := svc.UpdateStatus(context.Background(), 1, dto.UpdateTicketStatusDTO{Status: "Done"})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindValidation, httpErr.Kind)
}

func TestTicketArchive_OwnerOnly(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.tickets[1] = &entities.Ticket{ID: 1, Requestor: "school301234"}
	tickets.tickets[2] = &entities.Ticket{ID: 2, Requestor: "school999999"}
	svc := newTicketServiceForTest(tickets, newFakeBatchRepo())

	require.NoError(t, svc.Archive(context.Background(), 1, staffClaims("301234")))
	assert.True(t, tickets.tickets[1].Archived)

	err := svc.Archive(context.Background(), 2, staffClaims("301234"))
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindForbidden, httpErr.Kind)
	assert.False(t, tickets.tickets[2].Archived)
}

func TestTicketArchive_AdminCannotArchiveForeignTicket(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.tickets[1] = &entities.Ticket{ID: 1, Requestor: "school301234"}
	svc := newTicketServiceForTest(tickets, newFakeBatchRepo())

	err := svc.Archive(context.Background(), 1, adminClaims())

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, apperrors.KindForbidden, httpErr.Kind)
	assert.False(t, tickets.tickets[1].Archived)
}

func TestTicketList_StaffScopedToOwnUsername(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.tickets[1] = &entities.Ticket{ID: 1, Requestor: "school301234"}
	tickets.tickets[2] = &entities.Ticket{ID: 2, Requestor: "school999999"}
	tickets.tickets[3] = &entities.Ticket{ID: 3, Requestor: "school301234", Archived: true}
	svc := newTicketServiceForTest(tickets, newFakeBatchRepo())

	mine, err := svc.List(context.Background(), listFilter(), staffClaims("301234"), false)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint64(1), mine[0].ID)

	archived, err := svc.List(context.Background(), listFilter(), staffClaims("301234"), true)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, uint64(3), archived[0].ID)
}
