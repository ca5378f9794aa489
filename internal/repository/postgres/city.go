package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const cityCols = `id, name, slug, region, country, created_at, updated_at`

type cityRepository struct {
	pool  *pgxpool.Pool
	clock repository.Clock
}

func NewCityRepository(pool *pgxpool.Pool, clock repository.Clock) repository.CityRepository {
	return &cityRepository{pool: pool, clock: clock}
}

func scanCity(row pgx.Row) (model.City, error) {
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
	if err := ensurePool(r.pool); err != nil {
		return model.City{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO cities (name, slug, region, country, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+cityCols,
		c.Name, c.Slug, c.Region, c.Country, r.clock.Stamp(),
	)
	return one(row, scanCity)
}

func (r *cityRepository) GetByID(ctx context.Context, id int64) (model.City, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.City{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+cityCols+` FROM cities WHERE id = $1`, id), scanCity)
}

func (r *cityRepository) GetBySlug(ctx context.Context, slug string) (model.City, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.City{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+cityCols+` FROM cities WHERE slug = $1`, slug), scanCity)
}

func (r *cityRepository) Update(ctx context.Context, c model.City) (model.City, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.City{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE cities
		 SET name = $2, slug = $3, region = $4, country = $5, updated_at = $6
		 WHERE id = $1
		 RETURNING `+cityCols,
		c.ID, c.Name, c.Slug, c.Region, c.Country, r.clock.Stamp(),
	)
	return one(row, scanCity)
}

func (r *cityRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.pool), "cities", id)
}

func (r *cityRepository) List(ctx context.Context, f repository.CityFilter, p repository.Page) (repository.PageResult[model.City], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.City]{}, err
	}
	var c conds
	if f.Name != "" {
		c.add("name ILIKE $%d", repository.LikePattern(f.Name))
	}
	return listPage(ctx, getQ(ctx, r.pool), "cities", cityCols, "name ASC, id ASC", c, p, scanCity)
}

func (r *cityRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.pool), "cities", conds{})
}

func (r *cityRepository) Recent(ctx context.Context, limit int) ([]model.City, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.pool), "cities", cityCols, conds{}, limit, scanCity)
}

var _ repository.CityRepository = (*cityRepository)(nil)
