package repositories

import (
	"context"
	"errors"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	apperrors "sdo-ticketing/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userFields = "id, username, password, role, district, school_code, school, address, principal, contact_number, email, created_at"

type UserRepositoryInterface interface {
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateStaffAccount(ctx context.Context, payload dto.CreateSchoolAccountDTO, passwordHash string) (uint64, error)
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	ResetPasswordBySchool(ctx context.Context, school string, passwordHash string) (int64, error)
	ListSchools(ctx context.Context) ([]dto.SchoolDTO, error)
	ListStaffSchoolsByDistrict(ctx context.Context, district string) ([]dto.SchoolDTO, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.scanUser(r.storage.QueryRow(ctx,
		"SELECT "+userFields+" FROM users WHERE username = $1", username))
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return r.scanUser(r.storage.QueryRow(ctx,
		"SELECT "+userFields+" FROM users WHERE id = $1", id))
}

func (r *UserRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Password, &u.Role,
		&u.District, &u.SchoolCode, &u.School, &u.Address,
		&u.Principal, &u.ContactNumber, &u.Email, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) CreateStaffAccount(ctx context.Context, payload dto.CreateSchoolAccountDTO, passwordHash string) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO users (username, password, role, district, school_code, school, address, principal, contact_number, email)
		VALUES ($1, $2, 'Staff', $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		payload.Username, passwordHash, payload.District, payload.SchoolCode,
		payload.School, payload.Address, payload.Principal, payload.Number, payload.Email,
	).Scan(&id)
	return id, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE users SET password = $1 WHERE id = $2", passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ResetPasswordBySchool(ctx context.Context, school string, passwordHash string) (int64, error) {
	tag, err := r.storage.Exec(ctx,
		"UPDATE users SET password = $1 WHERE school = $2 AND role = 'Staff'", passwordHash, school)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) ListSchools(ctx context.Context) ([]dto.SchoolDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT school_code, school FROM users
		WHERE role = 'Staff' AND school_code IS NOT NULL
		GROUP BY school_code, school
		ORDER BY school`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchools(rows)
}

func (r *UserRepository) ListStaffSchoolsByDistrict(ctx context.Context, district string) ([]dto.SchoolDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT school_code, school FROM users
		WHERE role = 'Staff' AND district = $1
		ORDER BY school`, district)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchools(rows)
}

func scanSchools(rows pgx.Rows) ([]dto.SchoolDTO, error) {
	schools := make([]dto.SchoolDTO, 0)
	for rows.Next() {
		var s dto.SchoolDTO
		if err := rows.Scan(&s.SchoolCode, &s.School); err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}
