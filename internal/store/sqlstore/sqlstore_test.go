package sqlstore

import (
	"strings"
	"testing"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery_PostgresPlaceholders(t *testing.T) {
	d := goqu.Dialect("postgres")
	query, args, err := d.From(TableSnippets).
		Select(snippetColumns...).
		Order(goqu.I(colCreatedAt).Desc(), goqu.I(colID).Desc()).
		Limit(5).
		Offset(10).
		Prepared(true).
		ToSQL()
	require.NoError(t, err)
	assert.True(t, strings.Contains(query, `ORDER BY "created_at" DESC, "id" DESC`), query)
	assert.True(t, strings.Contains(query, "LIMIT $1 OFFSET $2"), query)
	assert.Len(t, args, 2)
}
