package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

type conds struct {
	parts []string
	args  []any
}

func (c *conds) add(expr string, args ...any) {
	c.parts = append(c.parts, expr)
	c.args = append(c.args, args...)
}

func (c *conds) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// stringList stores a []string as a JSON array in a TEXT column.
type stringList []string

func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *stringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = stringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("stringList: unsupported source %T", src)
	}
	out := []string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("stringList: %w", err)
	}
	*l = out
	return nil
}

func one[T any](row *sql.Row, scan func(scanner) (T, error)) (T, error) {
	v, err := scan(row)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, repository.ErrNotFound
		}
		return zero, MapSQLiteError(err)
	}
	return v, nil
}

func many[T any](ctx context.Context, exec q, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapSQLiteError(err)
	}
	defer rows.Close()
	items := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, MapSQLiteError(err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, MapSQLiteError(err)
	}
	return items, nil
}

func count(ctx context.Context, exec q, table string, c conds) (int, error) {
	var n int
	if err := exec.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+c.where(), c.args...).Scan(&n); err != nil {
		return 0, MapSQLiteError(err)
	}
	return n, nil
}

func listPage[T any](ctx context.Context, exec q, table, cols, order string, c conds, p repository.Page, scan func(scanner) (T, error)) (repository.PageResult[T], error) {
	total, err := count(ctx, exec, table, c)
	if err != nil {
		return repository.PageResult[T]{}, err
	}
	p = p.Sanitize()
	args := append(append([]any{}, c.args...), p.Limit, p.Offset)
	items, err := many(ctx, exec, scan, "SELECT "+cols+" FROM "+table+c.where()+" ORDER BY "+order+" LIMIT ? OFFSET ?", args...)
	if err != nil {
		return repository.PageResult[T]{}, err
	}
	return repository.PageResult[T]{Items: items, Total: total}, nil
}

func recent[T any](ctx context.Context, exec q, table, cols string, c conds, limit int, scan func(scanner) (T, error)) ([]T, error) {
	if limit <= 0 {
		return []T{}, nil
	}
	args := append(append([]any{}, c.args...), limit)
	return many(ctx, exec, scan, "SELECT "+cols+" FROM "+table+c.where()+" ORDER BY "+repository.RecencyOrder+" LIMIT ?", args...)
}

func deleteByID(ctx context.Context, exec q, table string, id int64) error {
	res, err := exec.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return MapSQLiteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func setTimestamps(ts *model.Timestamps, created time.Time, updated *time.Time) {
	ts.CreatedAt = created.UTC()
	if updated != nil {
		ts.UpdatedAt = updated.UTC()
	}
}
