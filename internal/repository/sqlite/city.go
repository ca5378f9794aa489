package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const cityCols = `id, name, slug, region, country, created_at, updated_at`

type cityRepository struct {
	db    *sql.DB
	clock repository.Clock
}

func NewCityRepository(db *sql.DB, clock repository.Clock) repository.CityRepository {
	return &cityRepository{db: db, clock: clock}
}

func scanCity(row scanner) (model.City, error) {
	var (
		c       model.City
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Region, &c.Country, &created, &updated); err != nil {
		return model.City{}, err
	}
	setTimestamps(&c.Timestamps, created, updated)
	return c, nil
}

func (r *cityRepository) Create(ctx context.Context, c model.City) (model.City, error) {
	if err := ensureDB(r.db); err != nil {
		return model.City{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO cities (name, slug, region, country, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+cityCols,
		c.Name, c.Slug, c.Region, c.Country, r.clock.Stamp(),
	)
	return one(row, scanCity)
}

func (r *cityRepository) GetByID(ctx context.Context, id int64) (model.City, error) {
	if err := ensureDB(r.db); err != nil {
		return model.City{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+cityCols+` FROM cities WHERE id = ?`, id), scanCity)
}

func (r *cityRepository) GetBySlug(ctx context.Context, slug string) (model.City, error) {
	if err := ensureDB(r.db); err != nil {
		return model.City{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+cityCols+` FROM cities WHERE slug = ?`, slug), scanCity)
}

func (r *cityRepository) Update(ctx context.Context, c model.City) (model.City, error) {
	if err := ensureDB(r.db); err != nil {
		return model.City{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`UPDATE cities
		 SET name = ?, slug = ?, region = ?, country = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+cityCols,
		c.Name, c.Slug, c.Region, c.Country, r.clock.Stamp(), c.ID,
	)
	return one(row, scanCity)
}

func (r *cityRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.db), "cities", id)
}

func (r *cityRepository) List(ctx context.Context, f repository.CityFilter, p repository.Page) (repository.PageResult[model.City], error) {
	if err := ensureDB(r.db); err != nil {
		return repository.PageResult[model.City]{}, err
	}
	var c conds
	if f.Name != "" {
		c.add(`name LIKE ? ESCAPE '\'`, repository.LikePattern(f.Name))
	}
	return listPage(ctx, getQ(ctx, r.db), "cities", cityCols, "name ASC, id ASC", c, p, scanCity)
}

func (r *cityRepository) Count(ctx context.Context) (int, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.db), "cities", conds{})
}

func (r *cityRepository) Recent(ctx context.Context, limit int) ([]model.City, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.db), "cities", cityCols, conds{}, limit, scanCity)
}

var _ repository.CityRepository = (*cityRepository)(nil)
