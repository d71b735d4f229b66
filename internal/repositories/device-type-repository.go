package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	apperrors "sdo-ticketing/pkg/errors"
)

type DeviceTypeRepositoryInterface interface {
	List(ctx context.Context) ([]entities.DeviceType, error)
	Create(ctx context.Context, payload dto.CreateDeviceTypeDTO) (uint64, error)
	Delete(ctx context.Context, id uint64) error
}

type DeviceTypeRepository struct {
	storage *pgxpool.Pool
}

func NewDeviceTypeRepository(storage *pgxpool.Pool) DeviceTypeRepositoryInterface {
	return &DeviceTypeRepository{storage: storage}
}

func (r *DeviceTypeRepository) List(ctx context.Context) ([]entities.DeviceType, error) {
	rows, err := r.storage.Query(ctx, "SELECT id, name FROM device_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deviceTypes := make([]entities.DeviceType, 0)
	for rows.Next() {
		var d entities.DeviceType
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		deviceTypes = append(deviceTypes, d)
	}
	return deviceTypes, rows.Err()
}

func (r *DeviceTypeRepository) Create(ctx context.Context, payload dto.CreateDeviceTypeDTO) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO device_types (name) VALUES ($1) RETURNING id",
		payload.Name).Scan(&id)
	return id, err
}

func (r *DeviceTypeRepository) Delete(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM device_types WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
