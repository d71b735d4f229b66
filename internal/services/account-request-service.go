package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	"sdo-ticketing/internal/numbering"
	"sdo-ticketing/internal/repositories"
	"sdo-ticketing/pkg/constants"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/types"
)

// RequestDocuments carries the stored filenames of the three identity
// documents attached to a new account request.
type RequestDocuments struct {
	ProofOfIdentity   string
	PrcID             string
	EndorsementLetter string
}

type AccountRequestServiceInterface interface {
	CreateRequest(ctx context.Context, payload dto.CreateAccountRequestDTO, docs RequestDocuments) (*dto.CreatedRequestDTO, error)
	CreateResetRequest(ctx context.Context, payload dto.CreateResetRequestDTO) (*dto.CreatedRequestDTO, error)
	ListRequests(ctx context.Context, filter types.ListFilter) ([]entities.AccountRequest, error)
	ListResetRequests(ctx context.Context, filter types.ListFilter) ([]entities.AccountResetRequest, error)
	UpdateRequestStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error
	UpdateResetRequestStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error
	CheckTransaction(ctx context.Context, number string) (*dto.TransactionDTO, error)
}

type AccountRequestService struct {
	requestRepo repositories.AccountRequestRepositoryInterface
	numbers     *numbering.Generator
	now         func() time.Time
	logger      *zap.Logger
}

func NewAccountRequestService(
	requestRepo repositories.AccountRequestRepositoryInterface,
	numbers *numbering.Generator,
	logger *zap.Logger,
) *AccountRequestService {
	return &AccountRequestService{
		requestRepo: requestRepo,
		numbers:     numbers,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *AccountRequestService) WithClock(now func() time.Time) *AccountRequestService {
	s.now = now
	return s
}

// fullName renders "Surname, FirstName MiddleName" for display and lookup.
func fullName(surname, firstName, middleName string) string {
	name := surname + ", " + firstName
	if middleName != "" {
		name += " " + middleName
	}
	return name
}

func (s *AccountRequestService) CreateRequest(ctx context.Context, payload dto.CreateAccountRequestDTO, docs RequestDocuments) (*dto.CreatedRequestDTO, error) {
	req := &entities.AccountRequest{
		RequestNumber:     s.numbers.AccountRequestNumber(),
		SelectedType:      payload.SelectedType,
		Name:              fullName(payload.Surname, payload.FirstName, payload.MiddleName),
		Surname:           payload.Surname,
		FirstName:         payload.FirstName,
		MiddleName:        null.NewString(payload.MiddleName, payload.MiddleName != ""),
		Designation:       payload.Designation,
		School:            payload.School,
		SchoolID:          payload.SchoolID,
		PersonalGmail:     payload.PersonalGmail,
		ProofOfIdentity:   docs.ProofOfIdentity,
		PrcID:             docs.PrcID,
		EndorsementLetter: docs.EndorsementLetter,
		Status:            constants.RequestStatusPending,
	}

	id, err := s.requestRepo.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account request filed",
		zap.String("requestNumber", req.RequestNumber), zap.String("school", req.School))
	return &dto.CreatedRequestDTO{RequestID: id, RequestNumber: req.RequestNumber}, nil
}

func (s *AccountRequestService) CreateResetRequest(ctx context.Context, payload dto.CreateResetRequestDTO) (*dto.CreatedRequestDTO, error) {
	req := &entities.AccountResetRequest{
		ResetNumber:    s.numbers.AccountResetNumber(),
		SelectedType:   payload.SelectedType,
		Name:           fullName(payload.Surname, payload.FirstName, payload.MiddleName),
		Surname:        payload.Surname,
		FirstName:      payload.FirstName,
		MiddleName:     null.NewString(payload.MiddleName, payload.MiddleName != ""),
		School:         payload.School,
		SchoolID:       payload.SchoolID,
		EmployeeNumber: payload.EmployeeNumber,
		Status:         constants.RequestStatusPending,
	}

	id, err := s.requestRepo.CreateResetRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account reset request filed",
		zap.String("resetNumber", req.ResetNumber), zap.String("school", req.School))
	return &dto.CreatedRequestDTO{RequestID: id, RequestNumber: req.ResetNumber}, nil
}

func (s *AccountRequestService) ListRequests(ctx context.Context, filter types.ListFilter) ([]entities.AccountRequest, error) {
	return s.requestRepo.ListRequests(ctx, filter)
}

func (s *AccountRequestService) ListResetRequests(ctx context.Context, filter types.ListFilter) ([]entities.AccountResetRequest, error) {
	return s.requestRepo.ListResetRequests(ctx, filter)
}

// UpdateRequestStatus moves an account request between workflow states.
// completedAt is stamped exactly when the target is Completed and cleared
// otherwise; notes become the reject reason.
func (s *AccountRequestService) UpdateRequestStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error {
	status := constants.NormalizeStatus(constants.RequestStatuses, payload.Status)
	if status == "" {
		return apperrors.Validation(map[string]string{"status": "unknown request status"})
	}

	completedAt := s.completionStamp(status)
	rejectReason := null.NewString(payload.Notes, payload.Notes != "")
	return s.requestRepo.UpdateRequestStatus(ctx, id, status, rejectReason, completedAt)
}

func (s *AccountRequestService) UpdateResetRequestStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error {
	status := constants.NormalizeStatus(constants.RequestStatuses, payload.Status)
	if status == "" {
		return apperrors.Validation(map[string]string{"status": "unknown request status"})
	}

	completedAt := s.completionStamp(status)
	notes := null.NewString(payload.Notes, payload.Notes != "")
	return s.requestRepo.UpdateResetRequestStatus(ctx, id, status, notes, completedAt)
}

func (s *AccountRequestService) completionStamp(status string) null.Time {
	if status == constants.RequestStatusCompleted {
		return null.TimeFrom(s.now())
	}
	return null.Time{}
}

// CheckTransaction is the public status lookup. The number's prefix decides
// which workflow to consult; the match is case-sensitive on purpose, the
// printed numbers are always uppercase.
func (s *AccountRequestService) CheckTransaction(ctx context.Context, number string) (*dto.TransactionDTO, error) {
	switch {
	case strings.HasPrefix(number, constants.AccountRequestPrefix):
		req, err := s.requestRepo.FindRequestByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		return &dto.TransactionDTO{
			Number: req.RequestNumber,
			Name:   req.Name,
			School: req.School,
			Status: req.Status,
			Notes:  req.RejectReason.String,
		}, nil
	case strings.HasPrefix(number, constants.AccountResetPrefix):
		req, err := s.requestRepo.FindResetRequestByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		return &dto.TransactionDTO{
			Number: req.ResetNumber,
			Name:   req.Name,
			School: req.School,
			Status: req.Status,
			Notes:  req.Notes.String,
		}, nil
	default:
		return nil, apperrors.NewHttpError(
			http.StatusBadRequest,
			apperrors.KindBadRequest,
			"transaction number must start with REQ- or RST-",
			apperrors.ErrBadRequest,
			nil,
		)
	}
}
