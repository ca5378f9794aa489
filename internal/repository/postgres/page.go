package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const pageCols = `id, title, slug, content, is_published, created_at, updated_at`

type pageRepository struct {
	pool  *pgxpool.Pool
	clock repository.Clock
}

func NewPageRepository(pool *pgxpool.Pool, clock repository.Clock) repository.PageRepository {
	return &pageRepository{pool: pool, clock: clock}
}

func scanPage(row pgx.Row) (model.Page, error) {
	var (
		p       model.Page
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.IsPublished, &created, &updated); err != nil {
		return model.Page{}, err
	}
	setTimestamps(&p.Timestamps, created, updated)
	return p, nil
}

func (r *pageRepository) Create(ctx context.Context, p model.Page) (model.Page, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Page{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO pages (title, slug, content, is_published, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+pageCols,
		p.Title, p.Slug, p.Content, p.IsPublished, r.clock.Stamp(),
	)
	return one(row, scanPage)
}

func (r *pageRepository) GetByID(ctx context.Context, id int64) (model.Page, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Page{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+pageCols+` FROM pages WHERE id = $1`, id), scanPage)
}

func (r *pageRepository) GetBySlug(ctx context.Context, slug string) (model.Page, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Page{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+pageCols+` FROM pages WHERE slug = $1`, slug), scanPage)
}

func (r *pageRepository) Update(ctx context.Context, p model.Page) (model.Page, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Page{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE pages
		 SET title = $2, slug = $3, content = $4, is_published = $5, updated_at = $6
		 WHERE id = $1
		 RETURNING `+pageCols,
		p.ID, p.Title, p.Slug, p.Content, p.IsPublished, r.clock.Stamp(),
	)
	return one(row, scanPage)
}

func (r *pageRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.pool), "pages", id)
}

func (r *pageRepository) List(ctx context.Context, publishedOnly bool, p repository.Page) (repository.PageResult[model.Page], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Page]{}, err
	}
	var c conds
	if publishedOnly {
		c.parts = append(c.parts, "is_published")
	}
	return listPage(ctx, getQ(ctx, r.pool), "pages", pageCols, "title ASC, id ASC", c, p, scanPage)
}

var _ repository.PageRepository = (*pageRepository)(nil)
