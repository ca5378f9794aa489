package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const categoryCols = `id, name, slug, description, parent_id, created_at, updated_at`

type categoryRepository struct {
	db    *sql.DB
	clock repository.Clock
}

func NewCategoryRepository(db *sql.DB, clock repository.Clock) repository.CategoryRepository {
	return &categoryRepository{db: db, clock: clock}
}

func scanCategory(row scanner) (model.Category, error) {
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
	if err := ensureDB(r.db); err != nil {
		return model.Category{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO categories (name, slug, description, parent_id, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+categoryCols,
		c.Name, c.Slug, c.Description, c.ParentID, r.clock.Stamp(),
	)
	return one(row, scanCategory)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Category{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id), scanCategory)
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (model.Category, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Category{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+categoryCols+` FROM categories WHERE slug = ?`, slug), scanCategory)
}

func (r *categoryRepository) Update(ctx context.Context, c model.Category) (model.Category, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Category{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`UPDATE categories
		 SET name = ?, slug = ?, description = ?, parent_id = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+categoryCols,
		c.Name, c.Slug, c.Description, c.ParentID, r.clock.Stamp(), c.ID,
	)
	return one(row, scanCategory)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.db), "categories", id)
}

func (r *categoryRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Category], error) {
	if err := ensureDB(r.db); err != nil {
		return repository.PageResult[model.Category]{}, err
	}
	return listPage(ctx, getQ(ctx, r.db), "categories", categoryCols, "name ASC, id ASC", conds{}, p, scanCategory)
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)
