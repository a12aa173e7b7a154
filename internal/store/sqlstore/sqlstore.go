// Package sqlstore implements store.Store on top of database/sql.
//
// Queries are built with goqu for the configured dialect and scanned with sqlx,
// so the postgres and sqlite drivers share one implementation and differ only
// in connection setup and DDL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jhuonas/ai-snippet-service/internal/model"
	"github.com/jhuonas/ai-snippet-service/internal/store"
)

const (
	TableSnippets = "snippets"

	colID        = "id"
	colText      = "text"
	colSummary   = "summary"
	colCreatedAt = "created_at"
)

var snippetColumns = []interface{}{colID, colText, colSummary, colCreatedAt}

type snippetRow struct {
	ID        string    `db:"id"`
	Text      string    `db:"text"`
	Summary   string    `db:"summary"`
	CreatedAt time.Time `db:"created_at"`
}

func (r snippetRow) toModel() *model.Snippet {
	return &model.Snippet{ID: r.ID, Text: r.Text, Summary: r.Summary, CreatedAt: r.CreatedAt.UTC()}
}

// Store is a SQL-backed store.Store. The goqu dialect named at construction
// must be registered by the caller (blank import of goqu/v9/dialect/<name>).
type Store struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
	now     func() time.Time
}

// New wraps an open connection. dialect is a goqu dialect name ("postgres", "sqlite3").
func New(db *sqlx.DB, dialect string) *Store {
	return &Store{db: db, dialect: goqu.Dialect(dialect), now: time.Now}
}

func (s *Store) Snippets() store.Snippets { return &snippets{s: s} }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema executes DDL statements in order. Statements must be idempotent.
func EnsureSchema(ctx context.Context, db *sqlx.DB, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

type snippets struct{ s *Store }

func (r *snippets) Create(ctx context.Context, in *model.Snippet) (*model.Snippet, error) {
	// Postgres keeps microsecond precision; truncate so the returned value matches a later read.
	row := snippetRow{
		ID:        model.NewSnippetID(),
		Text:      in.Text,
		Summary:   in.Summary,
		CreatedAt: r.s.now().UTC().Truncate(time.Microsecond),
	}
	query, args, err := r.s.dialect.Insert(TableSnippets).Rows(row).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert snippet: %w", err)
	}
	return row.toModel(), nil
}

func (r *snippets) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	query, args, err := r.s.dialect.From(TableSnippets).
		Select(snippetColumns...).
		Where(goqu.C(colID).Eq(id)).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var row snippetRow
	if err := r.s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snippet %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get snippet: %w", err)
	}
	return row.toModel(), nil
}

func (r *snippets) List(ctx context.Context, req model.ListSnippetsRequest) ([]*model.Snippet, error) {
	if req.Skip < 0 {
		return nil, fmt.Errorf("list snippets: negative skip %d", req.Skip)
	}
	// goqu treats a zero limit as "no limit"; an explicit zero page is empty.
	if req.Take <= 0 {
		return []*model.Snippet{}, nil
	}
	ds := r.s.dialect.From(TableSnippets).
		Select(snippetColumns...).
		Order(goqu.I(colCreatedAt).Desc(), goqu.I(colID).Desc()).
		Limit(uint(req.Take))
	if req.Skip > 0 {
		ds = ds.Offset(uint(req.Skip))
	}
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}
	var rows []snippetRow
	if err := r.s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	out := make([]*model.Snippet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *snippets) Count(ctx context.Context) (int, error) {
	query, args, err := r.s.dialect.From(TableSnippets).
		Select(goqu.COUNT(goqu.Star())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int
	if err := r.s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count snippets: %w", err)
	}
	return n, nil
}
