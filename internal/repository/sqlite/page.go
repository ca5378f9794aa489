package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const pageCols = `id, title, slug, content, is_published, created_at, updated_at`

type pageRepository struct {
	db    *sql.DB
	clock repository.Clock
}

func NewPageRepository(db *sql.DB, clock repository.Clock) repository.PageRepository {
	return &pageRepository{db: db, clock: clock}
}

func scanPage(row scanner) (model.Page, error) {
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
	if err := ensureDB(r.db); err != nil {
		return model.Page{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO pages (title, slug, content, is_published, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+pageCols,
		p.Title, p.Slug, p.Content, p.IsPublished, r.clock.Stamp(),
	)
	return one(row, scanPage)
}

func (r *pageRepository) GetByID(ctx context.Context, id int64) (model.Page, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Page{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+pageCols+` FROM pages WHERE id = ?`, id), scanPage)
}

func (r *pageRepository) GetBySlug(ctx context.Context, slug string) (model.Page, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Page{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+pageCols+` FROM pages WHERE slug = ?`, slug), scanPage)
}

func (r *pageRepository) Update(ctx context.Context, p model.Page) (model.Page, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Page{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`UPDATE pages
		 SET title = ?, slug = ?, content = ?, is_published = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+pageCols,
		p.Title, p.Slug, p.Content, p.IsPublished, r.clock.Stamp(), p.ID,
	)
	return one(row, scanPage)
}

func (r *pageRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.db), "pages", id)
}

func (r *pageRepository) List(ctx context.Context, publishedOnly bool, p repository.Page) (repository.PageResult[model.Page], error) {
	if err := ensureDB(r.db); err != nil {
		return repository.PageResult[model.Page]{}, err
	}
	var c conds
	if publishedOnly {
		c.add("is_published = 1")
	}
	return listPage(ctx, getQ(ctx, r.db), "pages", pageCols, "title ASC, id ASC", c, p, scanPage)
}

var _ repository.PageRepository = (*pageRepository)(nil)
