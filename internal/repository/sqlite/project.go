package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

const projectCols = `id, title, description, project_type, budget, timeline, status, category_id, city_id, created_at, updated_at`

type projectRepository struct {
	db    *sql.DB
	clock repository.Clock
}

func NewProjectRepository(db *sql.DB, clock repository.Clock) repository.ProjectRepository {
	return &projectRepository{db: db, clock: clock}
}

func scanProject(row scanner) (model.Project, error) {
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
	if err := ensureDB(r.db); err != nil {
		return model.Project{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO projects (title, description, project_type, budget, timeline, status, category_id, city_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+projectCols,
		p.Title, p.Description, p.ProjectType, p.Budget, p.Timeline, p.Status, p.CategoryID, p.CityID, r.clock.Stamp(),
	)
	return one(row, scanProject)
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (model.Project, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Project{}, err
	}
	return one(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+projectCols+` FROM projects WHERE id = ?`, id), scanProject)
}

func (r *projectRepository) Update(ctx context.Context, p model.Project) (model.Project, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Project{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`UPDATE projects
		 SET title = ?, description = ?, project_type = ?, budget = ?, timeline = ?,
		     status = ?, category_id = ?, city_id = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+projectCols,
		p.Title, p.Description, p.ProjectType, p.Budget, p.Timeline, p.Status, p.CategoryID, p.CityID, r.clock.Stamp(), p.ID,
	)
	return one(row, scanProject)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	return deleteByID(ctx, getQ(ctx, r.db), "projects", id)
}

func (r *projectRepository) List(ctx context.Context, f repository.ProjectFilter, p repository.Page) (repository.PageResult[model.Project], error) {
	if err := ensureDB(r.db); err != nil {
		return repository.PageResult[model.Project]{}, err
	}
	var c conds
	if f.Status != "" {
		c.add("status = ?", f.Status)
	}
	if f.CityID != nil {
		c.add("city_id = ?", *f.CityID)
	}
	return listPage(ctx, getQ(ctx, r.db), "projects", projectCols, "created_at DESC, id DESC", c, p, scanProject)
}

func (r *projectRepository) Count(ctx context.Context) (int, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	return count(ctx, getQ(ctx, r.db), "projects", conds{})
}

func (r *projectRepository) Recent(ctx context.Context, limit int) ([]model.Project, error) {
	if err := ensureDB(r.db); err != nil {
		return nil, err
	}
	return recent(ctx, getQ(ctx, r.db), "projects", projectCols, conds{}, limit, scanProject)
}

var _ repository.ProjectRepository = (*projectRepository)(nil)
