package services

import (
	"context"
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
)

type TicketServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateTicketDTO, attachments []string) (*dto.CreatedTicketDTO, error)
	List(ctx context.Context, filter types.ListFilter, claims *service.Claims, showArchived bool) ([]entities.Ticket, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateTicketStatusDTO) error
	Archive(ctx context.Context, id uint64, claims *service.Claims) error
	DevicesByTicketNumber(ctx context.Context, ticketNumber string) ([]entities.TicketDeviceRow, error)
}

type TicketService struct {
	ticketRepo repositories.TicketRepositoryInterface
	batchRepo  repositories.BatchRepositoryInterface
	numbers    *numbering.Generator
	now        func() time.Time
	logger     *zap.Logger
}

func NewTicketService(
	ticketRepo repositories.TicketRepositoryInterface,
	batchRepo repositories.BatchRepositoryInterface,
	numbers *numbering.Generator,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		batchRepo:  batchRepo,
		numbers:    numbers,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *TicketService) WithClock(now func() time.Time) *TicketService {
	s.now = now
	return s
}

// Create files a ticket. Hardware tickets must name a batch; selected devices
// are resolved against that batch by serial number, unresolvable serials are
// skipped, and a selection where nothing resolves rejects the whole ticket.
func (s *TicketService) Create(ctx context.Context, payload dto.CreateTicketDTO, attachments []string) (*dto.CreatedTicketDTO, error) {
	if payload.Category == constants.CategoryHardware && payload.BatchID == nil {
		return nil, apperrors.Validation(map[string]string{"batch": "required for Hardware tickets"})
	}

	var batchID null.Uint64
	var links []repositories.TicketDeviceLink
	if payload.BatchID != nil {
		if _, err := s.batchRepo.FindByID(ctx, *payload.BatchID); err != nil {
			return nil, err
		}
		batchID = null.Uint64From(*payload.BatchID)

		if len(payload.SelectedDevices) > 0 {
			serials := make([]string, 0, len(payload.SelectedDevices))
			for _, d := range payload.SelectedDevices {
				serials = append(serials, d.SerialNumber)
			}

			resolved, err := s.ticketRepo.ResolveDeviceIDs(ctx, *payload.BatchID, serials)
			if err != nil {
				return nil, err
			}

			for _, d := range payload.SelectedDevices {
				deviceID, ok := resolved[d.SerialNumber]
				if !ok {
					s.logger.Warn("skipping unresolvable device selection",
						zap.String("serialNumber", d.SerialNumber),
						zap.Uint64("batchId", *payload.BatchID))
					continue
				}
				links = append(links, repositories.TicketDeviceLink{
					BatchDevicesID:   deviceID,
					IssueDescription: d.Description,
				})
			}
			if len(links) == 0 {
				return nil, apperrors.NoValidDevices()
			}
		}
	}

	if attachments == nil {
		attachments = []string{}
	}
	ticket := &entities.Ticket{
		TicketNumber: s.numbers.TicketNumber(),
		Requestor:    payload.Requestor,
		Category:     payload.Category,
		Request:      payload.Request,
		Comments:     null.NewString(payload.Comments, payload.Comments != ""),
		Attachments:  attachments,
		Status:       constants.TicketStatusPending,
		BatchID:      batchID,
	}

	ticketID, err := s.ticketRepo.CreateWithDevices(ctx, ticket, links)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.String("ticketNumber", ticket.TicketNumber),
		zap.String("requestor", ticket.Requestor),
		zap.Int("devices", len(links)))
	return &dto.CreatedTicketDTO{TicketID: ticketID, TicketNumber: ticket.TicketNumber}, nil
}

// List scopes staff to their own tickets; admins see everything.
func (s *TicketService) List(ctx context.Context, filter types.ListFilter, claims *service.Claims, showArchived bool) ([]entities.Ticket, error) {
	requestor := ""
	if claims.Role == constants.RoleStaff {
		requestor = claims.Username
	}
	return s.ticketRepo.List(ctx, filter, requestor, showArchived)
}

// UpdateStatus moves a ticket to any valid status. closedAt is set exactly
// when the target is Completed and cleared on every other target, so
// reopening a completed ticket erases the close timestamp.
func (s *TicketService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateTicketStatusDTO) error {
	status := constants.NormalizeStatus(constants.TicketStatuses, payload.Status)
	if status == "" {
		return apperrors.Validation(map[string]string{"status": "unknown ticket status"})
	}

	if _, err := s.ticketRepo.FindByID(ctx, id); err != nil {
		return err
	}

	var closedAt null.Time
	if status == constants.TicketStatusCompleted {
		closedAt = null.TimeFrom(s.now())
	}
	return s.ticketRepo.UpdateStatus(ctx, id, status, closedAt)
}

// Archive hides a ticket from default listings. Only the account that filed
// the ticket may archive it, regardless of role.
func (s *TicketService) Archive(ctx context.Context, id uint64, claims *service.Claims) error {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ticket.Requestor != claims.Username {
		return apperrors.Forbidden("ticket belongs to another account")
	}
	return s.ticketRepo.SetArchived(ctx, id, true)
}

func (s *TicketService) DevicesByTicketNumber(ctx context.Context, ticketNumber string) ([]entities.TicketDeviceRow, error) {
	return s.ticketRepo.ListDevicesByTicketNumber(ctx, ticketNumber)
}
