package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/types"
)

const batchFields = "id, batch_number, school_code, school_name, send_date, status, received_date, cancelled_date, created_at"

// batchSearchColumns is the fixed searchable set for batch lists.
var batchSearchColumns = []string{"batch_number", "school_name", "school_code"}

type BatchRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Batch, error)
	List(ctx context.Context, filter types.ListFilter, schoolCode string) ([]entities.Batch, error)
	FindSerialCollisions(ctx context.Context, serials []string) ([]string, error)
	MaxSequenceForDay(ctx context.Context, datePrefix string) (int, error)
	CreateWithDevices(ctx context.Context, batch *entities.Batch, devices []dto.BatchDeviceDTO) (uint64, error)
	MarkDelivered(ctx context.Context, id uint64, receivedDate null.Time) (bool, error)
	MarkCancelled(ctx context.Context, id uint64, cancelledDate null.Time) (bool, error)
	ListDevices(ctx context.Context, batchID uint64) ([]entities.BatchDevice, error)
}

type BatchRepository struct {
	storage   *pgxpool.Pool
	txManager TxManagerInterface
}

func NewBatchRepository(storage *pgxpool.Pool, txManager TxManagerInterface) BatchRepositoryInterface {
	return &BatchRepository{storage: storage, txManager: txManager}
}

func (r *BatchRepository) FindByID(ctx context.Context, id uint64) (*entities.Batch, error) {
	var b entities.Batch
	err := r.storage.QueryRow(ctx,
		"SELECT "+batchFields+" FROM batches WHERE id = $1", id).Scan(
		&b.ID, &b.BatchNumber, &b.SchoolCode, &b.SchoolName, &b.SendDate,
		&b.Status, &b.ReceivedDate, &b.CancelledDate, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepository) List(ctx context.Context, filter types.ListFilter, schoolCode string) ([]entities.Batch, error) {
	builder := sq.Select(batchFields).
		From("batches").
		OrderBy("send_date DESC").
		PlaceholderFormat(sq.Dollar)

	if schoolCode != "" {
		builder = builder.Where(sq.Eq{"school_code": schoolCode})
	}
	builder = ApplyListFilter(builder, filter, "status", batchSearchColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]entities.Batch, 0)
	for rows.Next() {
		var b entities.Batch
		if err := rows.Scan(
			&b.ID, &b.BatchNumber, &b.SchoolCode, &b.SchoolName, &b.SendDate,
			&b.Status, &b.ReceivedDate, &b.CancelledDate, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// FindSerialCollisions returns every proposed serial that already exists in
// any batch, so batch creation can report the full list at once.
func (r *BatchRepository) FindSerialCollisions(ctx context.Context, serials []string) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT serial_number FROM batch_devices WHERE serial_number = ANY($1)", serials)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collisions := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		collisions = append(collisions, s)
	}
	return collisions, rows.Err()
}

// MaxSequenceForDay returns the highest NNNN already issued for the given
// YYYYMMDD prefix, 0 when the day has no batches yet.
func (r *BatchRepository) MaxSequenceForDay(ctx context.Context, datePrefix string) (int, error) {
	var max int
	err := r.storage.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(RIGHT(batch_number, 4) AS INTEGER)), 0)
		FROM batches
		WHERE batch_number LIKE $1`, datePrefix+"-%").Scan(&max)
	return max, err
}

// CreateWithDevices inserts the batch row and all of its device rows in one
// transaction; device rows only exist once the parent id does.
func (r *BatchRepository) CreateWithDevices(ctx context.Context, batch *entities.Batch, devices []dto.BatchDeviceDTO) (uint64, error) {
	var batchID uint64
	err := r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO batches (batch_number, school_code, school_name, send_date, status, received_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			batch.BatchNumber, batch.SchoolCode, batch.SchoolName,
			batch.SendDate, batch.Status, batch.ReceivedDate,
		).Scan(&batchID)
		if err != nil {
			return err
		}

		for _, d := range devices {
			if _, err := tx.Exec(ctx, `
				INSERT INTO batch_devices (batch_id, device_type, serial_number)
				VALUES ($1, $2, $3)`,
				batchID, d.DeviceType, d.SerialNumber,
			); err != nil {
				return err
			}
		}
		return nil
	})
	return batchID, err
}

// MarkDelivered flips a Pending batch to Delivered; the WHERE guard keeps
// the transition atomic under concurrent updates.
func (r *BatchRepository) MarkDelivered(ctx context.Context, id uint64, receivedDate null.Time) (bool, error) {
	tag, err := r.storage.Exec(ctx, `
		UPDATE batches SET status = 'Delivered', received_date = $2
		WHERE id = $1 AND status = 'Pending'`, id, receivedDate)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BatchRepository) MarkCancelled(ctx context.Context, id uint64, cancelledDate null.Time) (bool, error) {
	tag, err := r.storage.Exec(ctx, `
		UPDATE batches SET status = 'Cancelled', cancelled_date = $2
		WHERE id = $1 AND status = 'Pending'`, id, cancelledDate)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BatchRepository) ListDevices(ctx context.Context, batchID uint64) ([]entities.BatchDevice, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, batch_id, device_type, serial_number
		FROM batch_devices
		WHERE batch_id = $1
		ORDER BY device_type`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	devices := make([]entities.BatchDevice, 0)
	for rows.Next() {
		var d entities.BatchDevice
		if err := rows.Scan(&d.ID, &d.BatchID, &d.DeviceType, &d.SerialNumber); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// IsUniqueViolation reports whether err is a Postgres 23505 on the given
// constraint; used by the batch-number retry loop and the serial backstop.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return false
}
