package services

import (
	"context"

	"github.com/aarondl/null/v8"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	"sdo-ticketing/internal/repositories"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/types"
)

// In-memory repository fakes. They model just enough persistence semantics
// for the services under test: identity assignment, guarded transitions and
// injectable errors.

func listFilter() types.ListFilter { return types.ListFilter{} }

type fakeBatchRepo struct {
	batches         map[uint64]*entities.Batch
	devices         []entities.BatchDevice
	nextID          uint64
	maxSeqByDay     map[string]int
	createErrs      []error // popped per CreateWithDevices call before inserting
	createdBatch    []entities.Batch
	existingSerials map[string]bool
	racedSerials    []string // collide only after the first check, like a concurrent insert
	serialChecks    int
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{
		batches:         make(map[uint64]*entities.Batch),
		maxSeqByDay:     make(map[string]int),
		existingSerials: make(map[string]bool),
		nextID:          1,
	}
}

func (f *fakeBatchRepo) FindByID(_ context.Context, id uint64) (*entities.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBatchRepo) List(_ context.Context, _ types.ListFilter, schoolCode string) ([]entities.Batch, error) {
	result := make([]entities.Batch, 0)
	for _, b := range f.batches {
		if schoolCode == "" || b.SchoolCode == schoolCode {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (f *fakeBatchRepo) FindSerialCollisions(_ context.Context, serials []string) ([]string, error) {
	f.serialChecks++
	collisions := make([]string, 0)
	for _, s := range serials {
		if f.existingSerials[s] {
			collisions = append(collisions, s)
			continue
		}
		if f.serialChecks > 1 {
			for _, raced := range f.racedSerials {
				if raced == s {
					collisions = append(collisions, s)
					break
				}
			}
		}
	}
	return collisions, nil
}

func (f *fakeBatchRepo) MaxSequenceForDay(_ context.Context, datePrefix string) (int, error) {
	return f.maxSeqByDay[datePrefix], nil
}

func (f *fakeBatchRepo) CreateWithDevices(_ context.Context, batch *entities.Batch, devices []dto.BatchDeviceDTO) (uint64, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return 0, err
		}
	}

	id := f.nextID
	f.nextID++
	stored := *batch
	stored.ID = id
	f.batches[id] = &stored
	f.createdBatch = append(f.createdBatch, stored)
	for _, d := range devices {
		f.devices = append(f.devices, entities.BatchDevice{
			ID: uint64(len(f.devices) + 1), BatchID: id,
			DeviceType: d.DeviceType, SerialNumber: d.SerialNumber,
		})
		f.existingSerials[d.SerialNumber] = true
	}
	return id, nil
}

func (f *fakeBatchRepo) MarkDelivered(_ context.Context, id uint64, receivedDate null.Time) (bool, error) {
	b, ok := f.batches[id]
	if !ok || b.Status != "Pending" {
		return false, nil
	}
	b.Status = "Delivered"
	b.ReceivedDate = receivedDate
	return true, nil
}

func (f *fakeBatchRepo) MarkCancelled(_ context.Context, id uint64, cancelledDate null.Time) (bool, error) {
	b, ok := f.batches[id]
	if !ok || b.Status != "Pending" {
		return false, nil
	}
	b.Status = "Cancelled"
	b.CancelledDate = cancelledDate
	return true, nil
}

func (f *fakeBatchRepo) ListDevices(_ context.Context, batchID uint64) ([]entities.BatchDevice, error) {
	result := make([]entities.BatchDevice, 0)
	for _, d := range f.devices {
		if d.BatchID == batchID {
			result = append(result, d)
		}
	}
	return result, nil
}

type fakeTicketRepo struct {
	tickets     map[uint64]*entities.Ticket
	nextID      uint64
	serialToID  map[string]uint64 // batch-scoped resolution table
	serialBatch map[string]uint64
	savedLinks  []repositories.TicketDeviceLink
	deviceRows  []entities.TicketDeviceRow
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:     make(map[uint64]*entities.Ticket),
		serialToID:  make(map[string]uint64),
		serialBatch: make(map[string]uint64),
		nextID:      1,
	}
}

func (f *fakeTicketRepo) addDevice(batchID uint64, serial string, deviceID uint64) {
	f.serialToID[serial] = deviceID
	f.serialBatch[serial] = batchID
}

func (f *fakeTicketRepo) FindByID(_ context.Context, id uint64) (*entities.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTicketRepo) List(_ context.Context, _ types.ListFilter, requestor string, showArchived bool) ([]entities.Ticket, error) {
	result := make([]entities.Ticket, 0)
	for _, t := range f.tickets {
		if t.Archived != showArchived {
			continue
		}
		if requestor != "" && t.Requestor != requestor {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (f *fakeTicketRepo) CreateWithDevices(_ context.Context, ticket *entities.Ticket, links []repositories.TicketDeviceLink) (uint64, error) {
	id := f.nextID
	f.nextID++
	stored := *ticket
	stored.ID = id
	f.tickets[id] = &stored
	f.savedLinks = append(f.savedLinks, links...)
	return id, nil
}

func (f *fakeTicketRepo) ResolveDeviceIDs(_ context.Context, batchID uint64, serials []string) (map[string]uint64, error) {
	resolved := make(map[string]uint64)
	for _, s := range serials {
		if f.serialBatch[s] == batchID {
			resolved[s] = f.serialToID[s]
		}
	}
	return resolved, nil
}

func (f *fakeTicketRepo) UpdateStatus(_ context.Context, id uint64, status string, closedAt null.Time) error {
	t, ok := f.tickets[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	t.Status = status
	t.ClosedAt = closedAt
	return nil
}

func (f *fakeTicketRepo) SetArchived(_ context.Context, id uint64, archived bool) error {
	t, ok := f.tickets[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	t.Archived = archived
	return nil
}

func (f *fakeTicketRepo) ListDevicesByTicketNumber(_ context.Context, ticketNumber string) ([]entities.TicketDeviceRow, error) {
	result := make([]entities.TicketDeviceRow, 0)
	for _, r := range f.deviceRows {
		if r.TicketNumber == ticketNumber {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) ListAllTicketDevices(_ context.Context) ([]entities.TicketDeviceRow, error) {
	return f.deviceRows, nil
}

type fakeDeviceTypeRepo struct {
	deviceTypes map[uint64]*entities.DeviceType
	nextID      uint64
	createErr   error
}

func newFakeDeviceTypeRepo() *fakeDeviceTypeRepo {
	return &fakeDeviceTypeRepo{
		deviceTypes: make(map[uint64]*entities.DeviceType),
		nextID:      1,
	}
}

func (f *fakeDeviceTypeRepo) List(_ context.Context) ([]entities.DeviceType, error) {
	result := make([]entities.DeviceType, 0)
	for _, d := range f.deviceTypes {
		result = append(result, *d)
	}
	return result, nil
}

func (f *fakeDeviceTypeRepo) Create(_ context.Context, payload dto.CreateDeviceTypeDTO) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	f.deviceTypes[id] = &entities.DeviceType{ID: id, Name: payload.Name}
	return id, nil
}

func (f *fakeDeviceTypeRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := f.deviceTypes[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.deviceTypes, id)
	return nil
}

type fakeUserRepo struct {
	usersByName map[string]*entities.User
	usersByID   map[uint64]*entities.User
	passwords   map[uint64]string // id -> latest stored hash
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByName: make(map[string]*entities.User),
		usersByID:   make(map[uint64]*entities.User),
		passwords:   make(map[uint64]string),
	}
}

func (f *fakeUserRepo) add(u entities.User) {
	stored := u
	f.usersByName[u.Username] = &stored
	f.usersByID[u.ID] = &stored
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	u, ok := f.usersByName[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint64) (*entities.User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	_, ok := f.usersByName[username]
	return ok, nil
}

func (f *fakeUserRepo) CreateStaffAccount(_ context.Context, payload dto.CreateSchoolAccountDTO, passwordHash string) (uint64, error) {
	id := uint64(len(f.usersByID) + 1)
	f.add(entities.User{ID: id, Username: payload.Username, Password: passwordHash, Role: "Staff"})
	return id, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	u, ok := f.usersByID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Password = passwordHash
	f.passwords[id] = passwordHash
	return nil
}

func (f *fakeUserRepo) ResetPasswordBySchool(_ context.Context, school string, passwordHash string) (int64, error) {
	var affected int64
	for _, u := range f.usersByID {
		if u.Role == "Staff" && u.School.String == school {
			u.Password = passwordHash
			affected++
		}
	}
	return affected, nil
}

func (f *fakeUserRepo) ListSchools(_ context.Context) ([]dto.SchoolDTO, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListStaffSchoolsByDistrict(_ context.Context, _ string) ([]dto.SchoolDTO, error) {
	return nil, nil
}

type fakeAccountRequestRepo struct {
	requests      map[uint64]*entities.AccountRequest
	resetRequests map[uint64]*entities.AccountResetRequest
	nextID        uint64
}

func newFakeAccountRequestRepo() *fakeAccountRequestRepo {
	return &fakeAccountRequestRepo{
		requests:      make(map[uint64]*entities.AccountRequest),
		resetRequests: make(map[uint64]*entities.AccountResetRequest),
		nextID:        1,
	}
}

func (f *fakeAccountRequestRepo) CreateRequest(_ context.Context, req *entities.AccountRequest) (uint64, error) {
	id := f.nextID
	f.nextID++
	stored := *req
	stored.ID = id
	f.requests[id] = &stored
	return id, nil
}

func (f *fakeAccountRequestRepo) CreateResetRequest(_ context.Context, req *entities.AccountResetRequest) (uint64, error) {
	id := f.nextID
	f.nextID++
	stored := *req
	stored.ID = id
	f.resetRequests[id] = &stored
	return id, nil
}

func (f *fakeAccountRequestRepo) ListRequests(_ context.Context, _ types.ListFilter) ([]entities.AccountRequest, error) {
	result := make([]entities.AccountRequest, 0)
	for _, r := range f.requests {
		result = append(result, *r)
	}
	return result, nil
}

func (f *fakeAccountRequestRepo) ListResetRequests(_ context.Context, _ types.ListFilter) ([]entities.AccountResetRequest, error) {
	result := make([]entities.AccountResetRequest, 0)
	for _, r := range f.resetRequests {
		result = append(result, *r)
	}
	return result, nil
}

func (f *fakeAccountRequestRepo) FindRequestByNumber(_ context.Context, number string) (*entities.AccountRequest, error) {
	for _, r := range f.requests {
		if r.RequestNumber == number {
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAccountRequestRepo) FindResetRequestByNumber(_ context.Context, number string) (*entities.AccountResetRequest, error) {
	for _, r := range f.resetRequests {
		if r.ResetNumber == number {
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAccountRequestRepo) UpdateRequestStatus(_ context.Context, id uint64, status string, rejectReason null.String, completedAt null.Time) error {
	r, ok := f.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	r.Status = status
	r.RejectReason = rejectReason
	r.CompletedAt = completedAt
	return nil
}

func (f *fakeAccountRequestRepo) UpdateResetRequestStatus(_ context.Context, id uint64, status string, notes null.String, completedAt null.Time) error {
	r, ok := f.resetRequests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	r.Status = status
	r.Notes = notes
	r.CompletedAt = completedAt
	return nil
}
