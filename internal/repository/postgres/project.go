package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const projectCols = `id, title, description, project_type, budget, timeline, status, category_id, city_id, created_at, updated_at`

type projectRepository struct {
	pool  *pgxpool.Pool
	clock repository.Clock
}

func NewProjectRepository(pool *pgxpool.Pool, clock repository.Clock) repository.ProjectRepository {
	return &projectRepository{pool: pool, clock: clock}
}

func scanProject(row pgx.Row) (model.Project, error) {
	var (
		p       model.Project
		created time.Time
		updated *time.Time
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ProjectType, &p.Budget, &p.Timeline,
		&p.Status, &p.CategoryID, &p.CityID, &created, &updated); err != nil {
		return model.Project{}, err
	}
	setTimestamps(&p.Timestamps, created, updated)
	return p, nil
}

func (r *projectRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Project{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO projects (title, description, project_type, budget, timeline, status, category_id, city_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+projectCols,
		p.Title, p.Description, p.ProjectType, p.Budget, p.Timeline, p.Status, p.CategoryID, p.CityID, r.clock.Stamp(),
	)
	return one(row, scanProject)
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (model.Project, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Project{}, err
	}
	return one(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+projectCols+` FROM projects WHERE id = $1`, id), scanProject)
}

func (r *projectRepository) Update(ctx context.Context, p model.Project) (model.Project, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Project{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE projects
		 SET title = $2, description = $3, project_type = $4, budget = $5, timeline = $6,
		     status = $7, category_id = $8, city_id = $9, updated_at = $10
		 WHERE id = $1
		 RETURNING `+projectCols,
		p.ID, p.Title, p.Description, p.ProjectType, p.Budget, p.Timeline, p.Status, p.CategoryID, p.CityID, r.clock.Stamp(),
	)
	return one(row, scanProject)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.pool), "projects", id)
}

func (r *projectRepository) List(ctx context.Context, f repository.ProjectFilter, p repository.Page) (repository.PageResult[model.Project], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Project]{}, err
	}
	var c conds
	if f.Status != "" {
		c.add("status = $%d", f.Status)
	}
	if f.CityID != nil {
		c.add("city_id = $%d", *f.CityID)
	}
	return listPage(ctx, getQ(ctx, r.pool), "projects", projectCols, "created_at DESC, id DESC", c, p, scanProject)
}

func (r *projectRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.pool), "projects", conds{})
}

func (r *projectRepository) Recent(ctx context.Context, limit int) ([]model.Project, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.pool), "projects", projectCols, conds{}, limit, scanProject)
}

var _ repository.ProjectRepository = (*projectRepository)(nil)
