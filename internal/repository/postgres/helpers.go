package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

// conds accumulates WHERE fragments; expr carries a %d verb for the placeholder index.
type conds struct {
	parts []string
	args  []any
}

func (c *conds) add(expr string, arg any) {
	c.args = append(c.args, arg)
	c.parts = append(c.parts, fmt.Sprintf(expr, len(c.args)))
}

func (c *conds) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// window appends LIMIT/OFFSET placeholders after the filter arguments.
func (c *conds) window(p repository.Page) (string, []any) {
	p = p.Sanitize()
	n := len(c.args)
	args := append(append([]any{}, c.args...), p.Limit, p.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

func rowTo[T any](scan func(pgx.Row) (T, error)) pgx.RowToFunc[T] {
	return func(row pgx.CollectableRow) (T, error) { return scan(row) }
}

func one[T any](row pgx.Row, scan func(pgx.Row) (T, error)) (T, error) {
	v, err := scan(row)
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, repository.ErrNotFound
		}
		return zero, MapPgError(err)
	}
	return v, nil
}

func many[T any](ctx context.Context, exec q, scan func(pgx.Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, MapPgError(err)
	}
	items, err := pgx.CollectRows(rows, rowTo(scan))
	if err != nil {
		return nil, MapPgError(err)
	}
	return items, nil
}

// listPage runs the count and the window query with the same filter.
func listPage[T any](ctx context.Context, exec q, table, cols, order string, c conds, p repository.Page, scan func(pgx.Row) (T, error)) (repository.PageResult[T], error) {
	total, err := count(ctx, exec, table, c)
	if err != nil {
		return repository.PageResult[T]{}, err
	}
	window, args := c.window(p)
	items, err := many(ctx, exec, scan, "SELECT "+cols+" FROM "+table+c.where()+" ORDER BY "+order+window, args...)
	if err != nil {
		return repository.PageResult[T]{}, err
	}
	return repository.PageResult[T]{Items: items, Total: total}, nil
}

func count(ctx context.Context, exec q, table string, c conds) (int, error) {
	var n int
	if err := exec.QueryRow(ctx, "SELECT COUNT(*) FROM "+table+c.where(), c.args...).Scan(&n); err != nil {
		return 0, MapPgError(err)
	}
	return n, nil
}

func recent[T any](ctx context.Context, exec q, table, cols string, c conds, limit int, scan func(pgx.Row) (T, error)) ([]T, error) {
	if limit <= 0 {
		return []T{}, nil
	}
	args := append(append([]any{}, c.args...), limit)
	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d", cols, table, c.where(), repository.RecencyOrder, len(args))
	return many(ctx, exec, scan, sql, args...)
}

func deleteByID(ctx context.Context, exec q, table string, id int64) error {
	tag, err := exec.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// setTimestamps normalizes scanned timestamps; a NULL updated_at stays zero.
func setTimestamps(ts *model.Timestamps, created time.Time, updated *time.Time) {
	ts.CreatedAt = created.UTC()
	if updated != nil {
		ts.UpdatedAt = updated.UTC()
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
