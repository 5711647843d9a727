package book

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepo talks to the books table directly over pgx.
type PostgresRepo struct {
	db      *pgxpool.Pool
	table   string
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, table string, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, table: table, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	query, args, err := psql.Select(append([]string{"id"}, Fields...)...).From(r.table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.AuthorTranslator, &b.Publisher, &b.PublishedDate, &b.ReadDate,
			&b.Summary, &b.Thoughts, &b.Research, &b.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Insert always echoes the stored row; RETURNING gives us the new ID.
func (r *PostgresRepo) Insert(ctx context.Context, d Draft) (*Book, error) {
	query, args, err := psql.Insert(r.table).
		Columns(Fields...).
		Values(d.Title, d.AuthorTranslator, d.Publisher, d.PublishedDate, d.ReadDate,
			d.Summary, d.Thoughts, d.Research, d.Notes).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b := Book{Draft: d}
	if err := r.db.QueryRow(timeoutCtx, query, args...).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return &b, nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(timeoutCtx)
}
