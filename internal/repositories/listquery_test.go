package repositories

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdo-ticketing/pkg/types"
)

func ticketListBuilder() sq.SelectBuilder {
	return sq.Select("*").From("tickets").PlaceholderFormat(sq.Dollar)
}

func TestApplyListFilter_AllAndEmptyMatchEverything(t *testing.T) {
	base, baseArgs, err := ticketListBuilder().ToSql()
	require.NoError(t, err)

	for _, status := range []string{"", "all", "ALL", "All"} {
		filter := types.ListFilter{Status: status, Search: ""}
		got, args, err := ApplyListFilter(ticketListBuilder(), filter, "status", []string{"ticket_number"}).ToSql()
		require.NoError(t, err)
		assert.Equal(t, base, got)
		assert.Equal(t, baseArgs, args)
	}
}

func TestApplyListFilter_StatusIsCaseInsensitiveExactMatch(t *testing.T) {
	filter := types.ListFilter{Status: "pending"}
	got, args, err := ApplyListFilter(ticketListBuilder(), filter, "status", nil).ToSql()
	require.NoError(t, err)

	assert.Contains(t, got, "LOWER(status) = LOWER($1)")
	assert.Equal(t, []interface{}{"pending"}, args)
}

func TestApplyListFilter_SearchSpansOnlyDocumentedColumns(t *testing.T) {
	filter := types.ListFilter{Search: "LAPTOP"}
	cols := []string{"ticket_number", "requestor", "category"}
	got, args, err := ApplyListFilter(ticketListBuilder(), filter, "status", cols).ToSql()
	require.NoError(t, err)

	assert.Contains(t, got, "ticket_number ILIKE $1")
	assert.Contains(t, got, "requestor ILIKE $2")
	assert.Contains(t, got, "category ILIKE $3")
	// Comments are deliberately not searchable on tickets.
	assert.NotContains(t, got, "comments")
	assert.Equal(t, []interface{}{"%LAPTOP%", "%LAPTOP%", "%LAPTOP%"}, args)
}

func TestApplyListFilter_StatusAndSearchCombineWithAnd(t *testing.T) {
	filter := types.ListFilter{Status: "Delivered", Search: "101"}
	cols := []string{"batch_number", "school_name", "school_code"}
	got, _, err := ApplyListFilter(sq.Select("*").From("batches").PlaceholderFormat(sq.Dollar), filter, "status", cols).ToSql()
	require.NoError(t, err)

	assert.Contains(t, got, "LOWER(status) = LOWER($1)")
	assert.Contains(t, got, "AND (batch_number ILIKE $2 OR school_name ILIKE $3 OR school_code ILIKE $4)")
}
