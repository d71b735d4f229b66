package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sdo-ticketing/internal/entities"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/types"
)

const accountRequestFields = `id, request_number, selected_type, name, surname, first_name, middle_name,
	designation, school, school_id, personal_gmail,
	proof_of_identity, prc_id, endorsement_letter,
	status, reject_reason, created_at, completed_at`

const resetRequestFields = `id, reset_number, selected_type, name, surname, first_name, middle_name,
	school, school_id, employee_number, status, notes, created_at, completed_at`

var accountRequestSearchColumns = []string{"request_number", "name", "school", "school_id"}
var resetRequestSearchColumns = []string{"reset_number", "name", "school", "school_id", "employee_number"}

type AccountRequestRepositoryInterface interface {
	CreateRequest(ctx context.Context, req *entities.AccountRequest) (uint64, error)
	CreateResetRequest(ctx context.Context, req *entities.AccountResetRequest) (uint64, error)
	ListRequests(ctx context.Context, filter types.ListFilter) ([]entities.AccountRequest, error)
	ListResetRequests(ctx context.Context, filter types.ListFilter) ([]entities.AccountResetRequest, error)
	FindRequestByNumber(ctx context.Context, number string) (*entities.AccountRequest, error)
	FindResetRequestByNumber(ctx context.Context, number string) (*entities.AccountResetRequest, error)
	UpdateRequestStatus(ctx context.Context, id uint64, status string, rejectReason null.String, completedAt null.Time) error
	UpdateResetRequestStatus(ctx context.Context, id uint64, status string, notes null.String, completedAt null.Time) error
}

type AccountRequestRepository struct {
	storage *pgxpool.Pool
}

func NewAccountRequestRepository(storage *pgxpool.Pool) AccountRequestRepositoryInterface {
	return &AccountRequestRepository{storage: storage}
}

func (r *AccountRequestRepository) CreateRequest(ctx context.Context, req *entities.AccountRequest) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO account_requests
			(request_number, selected_type, name, surname, first_name, middle_name,
			 designation, school, school_id, personal_gmail,
			 proof_of_identity, prc_id, endorsement_letter, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		req.RequestNumber, req.SelectedType, req.Name, req.Surname, req.FirstName, req.MiddleName,
		req.Designation, req.School, req.SchoolID, req.PersonalGmail,
		req.ProofOfIdentity, req.PrcID, req.EndorsementLetter, req.Status,
	).Scan(&id)
	return id, err
}

func (r *AccountRequestRepository) CreateResetRequest(ctx context.Context, req *entities.AccountResetRequest) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO account_reset_requests
			(reset_number, selected_type, name, surname, first_name, middle_name,
			 school, school_id, employee_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		req.ResetNumber, req.SelectedType, req.Name, req.Surname, req.FirstName, req.MiddleName,
		req.School, req.SchoolID, req.EmployeeNumber, req.Status,
	).Scan(&id)
	return id, err
}

func (r *AccountRequestRepository) ListRequests(ctx context.Context, filter types.ListFilter) ([]entities.AccountRequest, error) {
	builder := sq.Select(accountRequestFields).
		From("account_requests").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)
	builder = ApplyListFilter(builder, filter, "status", accountRequestSearchColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]entities.AccountRequest, 0)
	for rows.Next() {
		req, err := scanAccountRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *AccountRequestRepository) ListResetRequests(ctx context.Context, filter types.ListFilter) ([]entities.AccountResetRequest, error) {
	builder := sq.Select(resetRequestFields).
		From("account_reset_requests").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)
	builder = ApplyListFilter(builder, filter, "status", resetRequestSearchColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]entities.AccountResetRequest, 0)
	for rows.Next() {
		req, err := scanResetRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *AccountRequestRepository) FindRequestByNumber(ctx context.Context, number string) (*entities.AccountRequest, error) {
	req, err := scanAccountRequest(r.storage.QueryRow(ctx,
		"SELECT "+accountRequestFields+" FROM account_requests WHERE request_number = $1", number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *AccountRequestRepository) FindResetRequestByNumber(ctx context.Context, number string) (*entities.AccountResetRequest, error) {
	req, err := scanResetRequest(r.storage.QueryRow(ctx,
		"SELECT "+resetRequestFields+" FROM account_reset_requests WHERE reset_number = $1", number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *AccountRequestRepository) UpdateRequestStatus(ctx context.Context, id uint64, status string, rejectReason null.String, completedAt null.Time) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE account_requests SET status = $2, reject_reason = $3, completed_at = $4
		WHERE id = $1`, id, status, rejectReason, completedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AccountRequestRepository) UpdateResetRequestStatus(ctx context.Context, id uint64, status string, notes null.String, completedAt null.Time) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE account_reset_requests SET status = $2, notes = $3, completed_at = $4
		WHERE id = $1`, id, status, notes, completedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanAccountRequest(row pgx.Row) (*entities.AccountRequest, error) {
	var req entities.AccountRequest
	err := row.Scan(
		&req.ID, &req.RequestNumber, &req.SelectedType, &req.Name, &req.Surname,
		&req.FirstName, &req.MiddleName, &req.Designation, &req.School, &req.SchoolID,
		&req.PersonalGmail, &req.ProofOfIdentity, &req.PrcID, &req.EndorsementLetter,
		&req.Status, &req.RejectReason, &req.CreatedAt, &req.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func scanResetRequest(row pgx.Row) (*entities.AccountResetRequest, error) {
	var req entities.AccountResetRequest
	err := row.Scan(
		&req.ID, &req.ResetNumber, &req.SelectedType, &req.Name, &req.Surname,
		&req.FirstName, &req.MiddleName, &req.School, &req.SchoolID, &req.EmployeeNumber,
		&req.Status, &req.Notes, &req.CreatedAt, &req.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
