package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const postCols = `id, title, content, author, is_published, category_id, created_at, updated_at`

type postRepository struct {
	pool  *pgxpool.Pool
	clock repository.Clock
}

func NewPostRepository(pool *pgxpool.Pool, clock repository.Clock) repository.PostRepository {
	return &postRepository{pool: pool, clock: clock}
}

func scanPost(row pgx.Row) (model.Post, error) {
	var (
		p       model.Post
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.IsPublished, &p.CategoryID, &created, &updated); err != nil {
		return model.Post{}, err
	}
	setTimestamps(&p.Timestamps, created, updated)
	return p, nil
}

func postConds(f repository.PostFilter) conds {
	var c conds
	if f.PublishedOnly {
		c.parts = append(c.parts, "is_published")
	}
	if f.CategoryID != nil {
		c.add("category_id = $%d", *f.CategoryID)
	}
	if f.Query != "" {
		c.add("(title ILIKE $%[1]d OR content ILIKE $%[1]d)", repository.LikePattern(f.Query))
	}
	return c
}

func (r *postRepository) Create(ctx context.Context, p model.Post) (model.Post, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Post{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO posts (title, content, author, is_published, category_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+postCols,
		p.Title, p.Content, p.Author, p.IsPublished, p.CategoryID, r.clock.Stamp(),
	)
	return one(row, scanPost)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (model.Post, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Post{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+postCols+` FROM posts WHERE id = $1`, id)
	return one(row, scanPost)
}

func (r *postRepository) Update(ctx context.Context, p model.Post) (model.Post, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Post{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE posts
		 SET title = $2, content = $3, author = $4, is_published = $5, category_id = $6, updated_at = $7
		 WHERE id = $1
		 RETURNING `+postCols,
		p.ID, p.Title, p.Content, p.Author, p.IsPublished, p.CategoryID, r.clock.Stamp(),
	)
	return one(row, scanPost)
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.pool), "posts", id)
}

func (r *postRepository) List(ctx context.Context, f repository.PostFilter, p repository.Page) (repository.PageResult[model.Post], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Post]{}, err
	}
	return listPage(ctx, getQ(ctx, r.pool), "posts", postCols, repository.RecencyOrder, postConds(f), p, scanPost)
}

func (r *postRepository) Count(ctx context.Context, f repository.PostFilter) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.pool), "posts", postConds(f))
}

func (r *postRepository) Recent(ctx context.Context, limit int) ([]model.Post, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.pool), "posts", postCols, postConds(repository.PostFilter{PublishedOnly: true}), limit, scanPost)
}

var _ repository.PostRepository = (*postRepository)(nil)
