package services

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	"sdo-ticketing/internal/numbering"
	"sdo-ticketing/internal/repositories"
	"sdo-ticketing/pkg/constants"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/service"
	"sdo-ticketing/pkg/types"
	"sdo-ticketing/pkg/utils"
)

// batchNumberAttempts bounds the retry loop that closes the race between
// MaxSequenceForDay and the insert; the unique index is the arbiter.
const batchNumberAttempts = 3

type BatchServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateBatchDTO) (*dto.CreatedBatchDTO, error)
	List(ctx context.Context, filter types.ListFilter, claims *service.Claims) ([]entities.Batch, error)
	Receive(ctx context.Context, id uint64, claims *service.Claims) error
	Cancel(ctx context.Context, id uint64) error
	ListDevices(ctx context.Context, batchID uint64) ([]entities.BatchDevice, error)
	NextNumber(ctx context.Context) (string, error)
}

type BatchService struct {
	batchRepo repositories.BatchRepositoryInterface
	today     func() time.Time
	logger    *zap.Logger
}

func NewBatchService(batchRepo repositories.BatchRepositoryInterface, logger *zap.Logger) *BatchService {
	return &BatchService{
		batchRepo: batchRepo,
		today:     utils.Today,
		logger:    logger,
	}
}

// WithToday injects a fixed business date for tests.
func (s *BatchService) WithToday(today func() time.Time) *BatchService {
	s.today = today
	return s
}

// Create registers a batch with its devices. Serial collisions against any
// existing batch reject the whole request listing every offender; a send
// date strictly before today means the shipment already happened, so the
// batch starts out Delivered with receivedDate equal to the send date.
func (s *BatchService) Create(ctx context.Context, payload dto.CreateBatchDTO) (*dto.CreatedBatchDTO, error) {
	sendDate, err := time.ParseInLocation("2006-01-02", payload.SendDate, time.Local)
	if err != nil {
		return nil, apperrors.Validation(map[string]string{"sendDate": "must be a date in YYYY-MM-DD format"})
	}

	serials := make([]string, 0, len(payload.Devices))
	seen := make(map[string]bool, len(payload.Devices))
	intraDupes := make([]string, 0)
	for _, d := range payload.Devices {
		if seen[d.SerialNumber] {
			intraDupes = append(intraDupes, d.SerialNumber)
			continue
		}
		seen[d.SerialNumber] = true
		serials = append(serials, d.SerialNumber)
	}
	if len(intraDupes) > 0 {
		return nil, apperrors.DuplicateSerial(intraDupes)
	}

	collisions, err := s.batchRepo.FindSerialCollisions(ctx, serials)
	if err != nil {
		return nil, err
	}
	if len(collisions) > 0 {
		return nil, apperrors.DuplicateSerial(collisions)
	}

	today := s.today()
	status := constants.BatchStatusPending
	var receivedDate null.Time
	if utils.DateOnly(sendDate).Before(today) {
		status = constants.BatchStatusDelivered
		receivedDate = null.TimeFrom(utils.DateOnly(sendDate))
	}

	batch := &entities.Batch{
		SchoolCode:   payload.SchoolCode,
		SchoolName:   payload.SchoolName,
		SendDate:     utils.DateOnly(sendDate),
		Status:       status,
		ReceivedDate: receivedDate,
	}

	var batchID uint64
	for attempt := 0; attempt < batchNumberAttempts; attempt++ {
		maxSeq, err := s.batchRepo.MaxSequenceForDay(ctx, numbering.BatchDatePrefix(today))
		if err != nil {
			return nil, err
		}
		batch.BatchNumber = numbering.FormatBatchNumber(today, maxSeq+1)

		batchID, err = s.batchRepo.CreateWithDevices(ctx, batch, payload.Devices)
		if err == nil {
			break
		}
		if repositories.IsUniqueViolation(err, "batches_batch_number_key") && attempt < batchNumberAttempts-1 {
			s.logger.Warn("batch number collision, retrying",
				zap.String("batchNumber", batch.BatchNumber))
			continue
		}
		if repositories.IsUniqueViolation(err, "batches_batch_number_key") {
			return nil, apperrors.NewHttpError(
				http.StatusConflict,
				apperrors.KindConflict,
				"could not allocate a batch number, try again",
				err,
				nil,
			)
		}
		if repositories.IsUniqueViolation(err, "batch_devices_serial_number_key") {
			// Backstop for a serial registered between the collision
			// check and the insert; re-check so the report names the
			// actual offenders, not the whole payload.
			raced, lookupErr := s.batchRepo.FindSerialCollisions(ctx, serials)
			if lookupErr != nil || len(raced) == 0 {
				return nil, apperrors.DuplicateSerial(serials)
			}
			return nil, apperrors.DuplicateSerial(raced)
		}
		return nil, err
	}

	result := &dto.CreatedBatchDTO{
		BatchID:     batchID,
		BatchNumber: batch.BatchNumber,
		Status:      batch.Status,
	}
	if batch.ReceivedDate.Valid {
		result.ReceivedDate = batch.ReceivedDate.Time.Format("2006-01-02")
	}

	s.logger.Info("batch created",
		zap.String("batchNumber", batch.BatchNumber),
		zap.String("schoolCode", batch.SchoolCode),
		zap.Int("devices", len(payload.Devices)),
		zap.String("status", batch.Status))
	return result, nil
}

// List scopes staff to their own school; admins see everything.
func (s *BatchService) List(ctx context.Context, filter types.ListFilter, claims *service.Claims) ([]entities.Batch, error) {
	schoolCode := ""
	if claims.Role == constants.RoleStaff {
		schoolCode = claims.SchoolCode
	}
	return s.batchRepo.List(ctx, filter, schoolCode)
}

// Receive confirms delivery of a Pending batch and stamps receivedDate with
// today's date. Staff may only receive batches addressed to their school.
func (s *BatchService) Receive(ctx context.Context, id uint64, claims *service.Claims) error {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if claims.Role == constants.RoleStaff && batch.SchoolCode != claims.SchoolCode {
		return apperrors.Forbidden("batch belongs to another school")
	}
	if !constants.CanTransitionBatch(batch.Status, constants.BatchStatusDelivered) {
		return apperrors.InvalidState(batch.Status, constants.BatchStatusDelivered)
	}

	ok, err := s.batchRepo.MarkDelivered(ctx, id, null.TimeFrom(s.today()))
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race; re-read for the accurate current state.
		current, err := s.batchRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return apperrors.InvalidState(current.Status, constants.BatchStatusDelivered)
	}
	return nil
}

// Cancel voids a Pending batch and stamps cancelledDate. Terminal states
// never move again.
func (s *BatchService) Cancel(ctx context.Context, id uint64) error {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !constants.CanTransitionBatch(batch.Status, constants.BatchStatusCancelled) {
		return apperrors.InvalidState(batch.Status, constants.BatchStatusCancelled)
	}

	ok, err := s.batchRepo.MarkCancelled(ctx, id, null.TimeFrom(s.today()))
	if err != nil {
		return err
	}
	if !ok {
		current, err := s.batchRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return apperrors.InvalidState(current.Status, constants.BatchStatusCancelled)
	}
	return nil
}

func (s *BatchService) ListDevices(ctx context.Context, batchID uint64) ([]entities.BatchDevice, error) {
	if _, err := s.batchRepo.FindByID(ctx, batchID); err != nil {
		return nil, err
	}
	return s.batchRepo.ListDevices(ctx, batchID)
}

// NextNumber previews the number the next batch created today would get. It
// is advisory only; Create re-derives the sequence under the unique index.
func (s *BatchService) NextNumber(ctx context.Context) (string, error) {
	today := s.today()
	maxSeq, err := s.batchRepo.MaxSequenceForDay(ctx, numbering.BatchDatePrefix(today))
	if err != nil {
		return "", err
	}
	return numbering.FormatBatchNumber(today, maxSeq+1), nil
}
