package persistence

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func dateValue(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func nullableDateValue(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.In(time.UTC)
	return &t
}

func nullableDate(t *time.Time) *civil.Date {
	if t == nil {
		return nil
	}
	d := civil.DateOf(*t)
	return &d
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteError turns constraint violations a client can fix into
// validation errors and everything else into an internal error.
func mapWriteError(err error, details string) error {
	switch pgErrorCode(err) {
	case pgForeignKeyViolation:
		return apperror.NewFieldError("profile", "invalid pk - object does not exist")
	case pgCheckViolation:
		return apperror.NewValidation(err)
	}
	return apperror.NewInternal(details, err)
}

func execAffectingOne(ctx context.Context, db *pgxpool.Pool, resource, id, query string, args ...any) error {
	cmdTag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "failed to write "+resource)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound(resource, id)
	}
	return nil
}

func queryRows(ctx context.Context, db *pgxpool.Pool, builder sq.SelectBuilder, resource string) (pgx.Rows, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list "+resource+" query", err)
	}
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query "+resource, err)
	}
	return rows, nil
}

// collect drains rows with scan, closing them.
func collect[T any](rows pgx.Rows, resource string, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	items := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating "+resource+" rows", err)
	}
	return items, nil
}

func scanError(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return apperror.NewInternal("failed to scan "+resource+" row", err)
}

func findOne[T any](ctx context.Context, db *pgxpool.Pool, query, resource, id string, scan func(pgx.Row) (*T, error), args ...any) (*T, error) {
	item, err := scan(db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound(resource, id)
		}
		return nil, err
	}
	return item, nil
}
