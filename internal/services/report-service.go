package services

import (
	"context"

	"go.uber.org/zap"

	"sdo-ticketing/internal/entities"
	"sdo-ticketing/internal/repositories"
	"sdo-ticketing/pkg/types"
)

type ReportServiceInterface interface {
	TicketRegister(ctx context.Context, filter types.ListFilter) ([]entities.Ticket, error)
	DeviceRegister(ctx context.Context) ([]entities.TicketDeviceRow, error)
}

// ReportService assembles the flat datasets behind the admin exports. The
// xlsx rendering itself lives at the controller boundary.
type ReportService struct {
	ticketRepo repositories.TicketRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(ticketRepo repositories.TicketRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{ticketRepo: ticketRepo, logger: logger}
}

// TicketRegister returns all non-archived tickets matching the filter,
// unscoped by requestor.
func (s *ReportService) TicketRegister(ctx context.Context, filter types.ListFilter) ([]entities.Ticket, error) {
	return s.ticketRepo.List(ctx, filter, "", false)
}

// DeviceRegister returns every ticket-to-device association with its batch
// context, one row per device.
func (s *ReportService) DeviceRegister(ctx context.Context) ([]entities.TicketDeviceRow, error) {
	return s.ticketRepo.ListAllTicketDevices(ctx)
}
