package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const postCols = `id, title, content, author, is_published, category_id, created_at, updated_at`

type postRepository struct {
	db    *sql.DB
	clock repository.Clock
}

func NewPostRepository(db *sql.DB, clock repository.Clock) repository.PostRepository {
	return &postRepository{db: db, clock: clock}
}

func scanPost(row scanner) (model.Post, error) {
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
		c.add("is_published = 1")
	}
	if f.CategoryID != nil {
		c.add("category_id = ?", *f.CategoryID)
	}
	if f.Query != "" {
		pattern := repository.LikePattern(f.Query)
		c.add(`(title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return c
}

func (r *postRepository) Create(ctx context.Context, p model.Post) (model.Post, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Post{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO posts (title, content, author, is_published, category_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING `+postCols,
		p.Title, p.Content, p.Author, p.IsPublished, p.CategoryID, r.clock.Stamp(),
	)
	return one(row, scanPost)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (model.Post, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Post{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+postCols+` FROM posts WHERE id = ?`, id), scanPost)
}

func (r *postRepository) Update(ctx context.Context, p model.Post) (model.Post, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Post{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`UPDATE posts
		 SET title = ?, content = ?, author = ?, is_published = ?, category_id = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+postCols,
		p.Title, p.Content, p.Author, p.IsPublished, p.CategoryID, r.clock.Stamp(), p.ID,
	)
	return one(row, scanPost)
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.db), "posts", id)
}

func (r *postRepository) List(ctx context.Context, f repository.PostFilter, p repository.Page) (repository.PageResult[model.Post], error) {
	if err := ensureDB(r.db); err != nil {
		return repository.PageResult[model.Post]{}, err
	}
	return listPage(ctx, getQ(ctx, r.db), "posts", postCols, repository.RecencyOrder, postConds(f), p, scanPost)
}

func (r *postRepository) Count(ctx context.Context, f repository.PostFilter) (int, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.db), "posts", postConds(f))
}

func (r *postRepository) Recent(ctx context.Context, limit int) ([]model.Post, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.db), "posts", postCols, postConds(repository.PostFilter{PublishedOnly: true}), limit, scanPost)
}

var _ repository.PostRepository = (*postRepository)(nil)
