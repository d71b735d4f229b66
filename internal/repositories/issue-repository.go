package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sdo-ticketing/internal/dto"
	"sdo-ticketing/internal/entities"
	apperrors "sdo-ticketing/pkg/errors"
	"sdo-ticketing/pkg/types"
)

const issueFields = "id, name, category"

var issueSearchColumns = []string{"name", "category"}

type IssueRepositoryInterface interface {
	List(ctx context.Context, filter types.ListFilter) ([]entities.Issue, error)
	Create(ctx context.Context, payload dto.CreateIssueDTO) (uint64, error)
	Delete(ctx context.Context, id uint64) error
}

type IssueRepository struct {
	storage *pgxpool.Pool
}

func NewIssueRepository(storage *pgxpool.Pool) IssueRepositoryInterface {
	return &IssueRepository{storage: storage}
}

// issueListQuery builds the catalog list statement. Issues have no status
// column; the filter's status slot carries the category for exact matching.
func issueListQuery(filter types.ListFilter) (string, []interface{}, error) {
	builder := sq.Select(issueFields).
		From("issues").
		OrderBy("category, name").
		PlaceholderFormat(sq.Dollar)
	builder = ApplyListFilter(builder, filter, "category", issueSearchColumns)
	return builder.ToSql()
}

func (r *IssueRepository) List(ctx context.Context, filter types.ListFilter) ([]entities.Issue, error) {
	query, args, err := issueListQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssues(rows)
}

func (r *IssueRepository) Create(ctx context.Context, payload dto.CreateIssueDTO) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO issues (name, category) VALUES ($1, $2) RETURNING id",
		payload.Name, payload.Category).Scan(&id)
	return id, err
}

func (r *IssueRepository) Delete(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM issues WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanIssues(rows pgx.Rows) ([]entities.Issue, error) {
	issues := make([]entities.Issue, 0)
	for rows.Next() {
		var i entities.Issue
		if err := rows.Scan(&i.ID, &i.Name, &i.Category); err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}
