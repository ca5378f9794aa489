package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const lineCols = `id, line_number, description, status, gauge_type, cities_served, category_id, created_at, updated_at`

type lineRepository struct {
	pool  *pgxpool.Pool
	clock repository.Clock
}

func NewLineRepository(pool *pgxpool.Pool, clock repository.Clock) repository.LineRepository {
	return &lineRepository{pool: pool, clock: clock}
}

func scanLine(row pgx.Row) (model.Line, error) {
	var (
		l       model.Line
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&l.ID, &l.LineNumber, &l.Description, &l.Status, &l.GaugeType, &l.CitiesServed, &l.CategoryID, &created, &updated); err != nil {
		return model.Line{}, err
	}
	setTimestamps(&l.Timestamps, created, updated)
	return l, nil
}

func (r *lineRepository) Create(ctx context.Context, l model.Line) (model.Line, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Line{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO lines (line_number, description, status, gauge_type, cities_served, category_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+lineCols,
		l.LineNumber, l.Description, l.Status, l.GaugeType, nonNil(l.CitiesServed), l.CategoryID, r.clock.Stamp(),
	)
	return one(row, scanLine)
}

func (r *lineRepository) GetByID(ctx context.Context, id int64) (model.Line, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Line{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+lineCols+` FROM lines WHERE id = $1`, id), scanLine)
}

func (r *lineRepository) Update(ctx context.Context, l model.Line) (model.Line, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Line{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE lines
		 SET line_number = $2, description = $3, status = $4, gauge_type = $5, cities_served = $6,
		     category_id = $7, updated_at = $8
		 WHERE id = $1
		 RETURNING `+lineCols,
		l.ID, l.LineNumber, l.Description, l.Status, l.GaugeType, nonNil(l.CitiesServed), l.CategoryID, r.clock.Stamp(),
	)
	return one(row, scanLine)
}

func (r *lineRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.pool), "lines", id)
}

func (r *lineRepository) List(ctx context.Context, f repository.LineFilter, p repository.Page) (repository.PageResult[model.Line], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Line]{}, err
	}
	var c conds
	if f.GaugeType != "" {
		c.add("gauge_type = $%d", f.GaugeType)
	}
	if f.Status != "" {
		c.add("status = $%d", f.Status)
	}
	if f.City != "" {
		c.add("$%d = ANY(cities_served)", f.City)
	}
	return listPage(ctx, getQ(ctx, r.pool), "lines", lineCols, "line_number ASC, id ASC", c, p, scanLine)
}

func (r *lineRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.pool), "lines", conds{})
}

func (r *lineRepository) Recent(ctx context.Context, limit int) ([]model.Line, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.pool), "lines", lineCols, conds{}, limit, scanLine)
}

var _ repository.LineRepository = (*lineRepository)(nil)
