package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const lineCols = `id, line_number, description, status, gauge_type, cities_served, category_id, created_at, updated_at`

type lineRepository struct {
	db    *sql.DB
	clock repository.Clock
}

func NewLineRepository(db *sql.DB, clock repository.Clock) repository.LineRepository {
	return &lineRepository{db: db, clock: clock}
}

func scanLine(row scanner) (model.Line, error) {
	var (
		l       model.Line
		cities  stringList
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&l.ID, &l.LineNumber, &l.Description, &l.Status, &l.GaugeType, &cities, &l.CategoryID, &created, &updated); err != nil {
		return model.Line{}, err
	}
	l.CitiesServed = cities
	setTimestamps(&l.Timestamps, created, updated)
	return l, nil
}

func (r *lineRepository) Create(ctx context.Context, l model.Line) (model.Line, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Line{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO lines (line_number, description, status, gauge_type, cities_served, category_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+lineCols,
		l.LineNumber, l.Description, l.Status, l.GaugeType, stringList(l.CitiesServed), l.CategoryID, r.clock.Stamp(),
	)
	return one(row, scanLine)
}

func (r *lineRepository) GetByID(ctx context.Context, id int64) (model.Line, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Line{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+lineCols+` FROM lines WHERE id = ?`, id), scanLine)
}

func (r *lineRepository) Update(ctx context.Context, l model.Line) (model.Line, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Line{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`UPDATE lines
		 SET line_number = ?, description = ?, status = ?, gauge_type = ?, cities_served = ?,
		     category_id = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+lineCols,
		l.LineNumber, l.Description, l.Status, l.GaugeType, stringList(l.CitiesServed), l.CategoryID, r.clock.Stamp(), l.ID,
	)
	return one(row, scanLine)
}

func (r *lineRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.db), "lines", id)
}

func (r *lineRepository) List(ctx context.Context, f repository.LineFilter, p repository.Page) (repository.PageResult[model.Line], error) {
	if err := ensureDB(r.db); err != nil {
		return repository.PageResult[model.Line]{}, err
	}
	var c conds
	if f.GaugeType != "" {
		c.add("gauge_type = ?", f.GaugeType)
	}
	if f.Status != "" {
		c.add("status = ?", f.Status)
	}
	if f.City != "" {
		c.add("EXISTS (SELECT 1 FROM json_each(lines.cities_served) WHERE json_each.value = ?)", f.City)
	}
	return listPage(ctx, getQ(ctx, r.db), "lines", lineCols, "line_number ASC, id ASC", c, p, scanLine)
}

func (r *lineRepository) Count(ctx context.Context) (int, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.db), "lines", conds{})
}

func (r *lineRepository) Recent(ctx context.Context, limit int) ([]model.Line, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.db), "lines", lineCols, conds{}, limit, scanLine)
}

var _ repository.LineRepository = (*lineRepository)(nil)
