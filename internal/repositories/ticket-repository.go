package repositories

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sdo-ticketing/internal/entities"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/types"
)

const ticketFields = "id, ticket_number, requestor, category, request, comments, attachments, status, batch_id, created_at, closed_at, archived"

// ticketSearchColumns: number, requestor and category only. Comments are
// deliberately not searchable.
var ticketSearchColumns = []string{"ticket_number", "requestor", "category"}

const ticketDeviceJoin = `
	SELECT t.ticket_number, t.requestor, b.id, b.batch_number, bd.device_type, bd.serial_number, td.issue_description
	FROM tickets t
	JOIN ticket_devices td ON t.id = td.ticket_id
	JOIN batch_devices bd ON td.batch_devices_id = bd.id
	JOIN batches b ON bd.batch_id = b.id`

// TicketDeviceLink is one resolved association ready for insertion.
type TicketDeviceLink struct {
	BatchDevicesID   uint64
	IssueDescription string
}

type TicketRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Ticket, error)
	List(ctx context.Context, filter types.ListFilter, requestor string, showArchived bool) ([]entities.Ticket, error)
	CreateWithDevices(ctx context.Context, ticket *entities.Ticket, links []TicketDeviceLink) (uint64, error)
	ResolveDeviceIDs(ctx context.Context, batchID uint64, serials []string) (map[string]uint64, error)
	UpdateStatus(ctx context.Context, id uint64, status string, closedAt null.Time) error
	SetArchived(ctx context.Context, id uint64, archived bool) error
	ListDevicesByTicketNumber(ctx context.Context, ticketNumber string) ([]entities.TicketDeviceRow, error)
	ListAllTicketDevices(ctx context.Context) ([]entities.TicketDeviceRow, error)
}

type TicketRepository struct {
	storage   *pgxpool.Pool
	txManager TxManagerInterface
}

func NewTicketRepository(storage *pgxpool.Pool, txManager TxManagerInterface) TicketRepositoryInterface {
	return &TicketRepository{storage: storage, txManager: txManager}
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint64) (*entities.Ticket, error) {
	row := r.storage.QueryRow(ctx, "SELECT "+ticketFields+" FROM tickets WHERE id = $1", id)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TicketRepository) List(ctx context.Context, filter types.ListFilter, requestor string, showArchived bool) ([]entities.Ticket, error) {
	builder := sq.Select(ticketFields).
		From("tickets").
		Where(sq.Eq{"archived": showArchived}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if requestor != "" {
		builder = builder.Where(sq.Eq{"requestor": requestor})
	}
	builder = ApplyListFilter(builder, filter, "status", ticketSearchColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]entities.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var t entities.Ticket
	var attachments []byte
	err := row.Scan(
		&t.ID, &t.TicketNumber, &t.Requestor, &t.Category, &t.Request,
		&t.Comments, &attachments, &t.Status, &t.BatchID,
		&t.CreatedAt, &t.ClosedAt, &t.Archived,
	)
	if err != nil {
		return nil, err
	}

	t.Attachments = []string{}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &t.Attachments); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// ResolveDeviceIDs maps serial numbers to batch_devices ids, scoped to one
// batch: a serial is only meaningful inside its own batch. Serials that do
// not resolve are simply absent from the result.
func (r *TicketRepository) ResolveDeviceIDs(ctx context.Context, batchID uint64, serials []string) (map[string]uint64, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, serial_number FROM batch_devices
		WHERE batch_id = $1 AND serial_number = ANY($2)`, batchID, serials)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resolved := make(map[string]uint64)
	for rows.Next() {
		var id uint64
		var serial string
		if err := rows.Scan(&id, &serial); err != nil {
			return nil, err
		}
		resolved[serial] = id
	}
	return resolved, rows.Err()
}

// CreateWithDevices inserts the ticket and its device associations in one
// transaction: either the whole ticket commits or none of it does.
func (r *TicketRepository) CreateWithDevices(ctx context.Context, ticket *entities.Ticket, links []TicketDeviceLink) (uint64, error) {
	attachments, err := json.Marshal(ticket.Attachments)
	if err != nil {
		return 0, err
	}

	var ticketID uint64
	err = r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO tickets (ticket_number, requestor, category, request, comments, attachments, status, batch_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			ticket.TicketNumber, ticket.Requestor, ticket.Category, ticket.Request,
			ticket.Comments, attachments, ticket.Status, ticket.BatchID,
		).Scan(&ticketID)
		if err != nil {
			return err
		}

		for _, link := range links {
			if _, err := tx.Exec(ctx, `
				INSERT INTO ticket_devices (ticket_id, batch_devices_id, issue_description)
				VALUES ($1, $2, $3)`,
				ticketID, link.BatchDevicesID, link.IssueDescription,
			); err != nil {
				return err
			}
		}
		return nil
	})
	return ticketID, err
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id uint64, status string, closedAt null.Time) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE tickets SET status = $2, closed_at = $3 WHERE id = $1", id, status, closedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) SetArchived(ctx context.Context, id uint64, archived bool) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE tickets SET archived = $2 WHERE id = $1", id, archived)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) ListDevicesByTicketNumber(ctx context.Context, ticketNumber string) ([]entities.TicketDeviceRow, error) {
	rows, err := r.storage.Query(ctx,
		ticketDeviceJoin+" WHERE t.ticket_number = $1 ORDER BY bd.id", ticketNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketDeviceRows(rows)
}

func (r *TicketRepository) ListAllTicketDevices(ctx context.Context) ([]entities.TicketDeviceRow, error) {
	rows, err := r.storage.Query(ctx, ticketDeviceJoin+" ORDER BY bd.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketDeviceRows(rows)
}

func scanTicketDeviceRows(rows pgx.Rows) ([]entities.TicketDeviceRow, error) {
	result := make([]entities.TicketDeviceRow, 0)
	for rows.Next() {
		var row entities.TicketDeviceRow
		if err := rows.Scan(
			&row.TicketNumber, &row.Requestor, &row.BatchID, &row.BatchNumber,
			&row.DeviceType, &row.SerialNumber, &row.IssueDescription,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
