package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const categoryCols = `id, name, slug, description, parent_id, created_at, updated_at`

type categoryRepository struct {
	pool  *pgxpool.Pool
	clock repository.Clock
}

func NewCategoryRepository(pool *pgxpool.Pool, clock repository.Clock) repository.CategoryRepository {
	return &categoryRepository{pool: pool, clock: clock}
}

func scanCategory(row pgx.Row) (model.Category, error) {
	var (
		c       model.Category
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &created, &updated); err != nil {
		return model.Category{}, err
	}
	setTimestamps(&c.Timestamps, created, updated)
	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Category{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO categories (name, slug, description, parent_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+categoryCols,
		c.Name, c.Slug, c.Description, c.ParentID, r.clock.Stamp(),
	)
	return one(row, scanCategory)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Category{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+categoryCols+` FROM categories WHERE id = $1`, id), scanCategory)
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (model.Category, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Category{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+categoryCols+` FROM categories WHERE slug = $1`, slug), scanCategory)
}

func (r *categoryRepository) Update(ctx context.Context, c model.Category) (model.Category, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Category{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE categories
		 SET name = $2, slug = $3, description = $4, parent_id = $5, updated_at = $6
		 WHERE id = $1
		 RETURNING `+categoryCols,
		c.ID, c.Name, c.Slug, c.Description, c.ParentID, r.clock.Stamp(),
	)
	return one(row, scanCategory)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.pool), "categories", id)
}

func (r *categoryRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Category], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Category]{}, err
	}
	return listPage(ctx, getQ(ctx, r.pool), "categories", categoryCols, "name ASC, id ASC", conds{}, p, scanCategory)
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)
