package repositories

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"sdo-ticketing/pkg/types"
)

// ApplyListFilter narrows a list query by the uniform status/search
// contract: status "" or "all" matches everything, otherwise an exact
// case-insensitive match; a non-empty search term must appear (substring,
// case-insensitive) in at least one of the entity's searchable columns.
// Pure over the builder: same inputs, same query.
func ApplyListFilter(builder sq.SelectBuilder, filter types.ListFilter, statusColumn string, searchColumns []string) sq.SelectBuilder {
	if filter.Status != "" && !strings.EqualFold(filter.Status, "all") {
		builder = builder.Where(sq.Expr("LOWER("+statusColumn+") = LOWER(?)", filter.Status))
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		or := make(sq.Or, 0, len(searchColumns))
		for _, col := range searchColumns {
			or = append(or, sq.ILike{col: pattern})
		}
		builder = builder.Where(or)
	}

	return builder
}
