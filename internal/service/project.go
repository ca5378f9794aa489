package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

type projectService struct {
	crud[model.Project]
	projects   repository.ProjectRepository
	categories repository.CategoryRepository
	cities     repository.CityRepository
	log        zerolog.Logger
}

func NewProjectService(projects repository.ProjectRepository, categories repository.CategoryRepository, cities repository.CityRepository, logger zerolog.Logger) ProjectService {
	l := childLogger(logger, "project")
	return &projectService{crud: crud[model.Project]{store: projects, log: l}, projects: projects, categories: categories, cities: cities, log: l}
}

func (s *projectService) build(ctx context.Context, in ProjectInput) (model.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.ProjectType = strings.TrimSpace(in.ProjectType)
	in.Status = NormalizeProjectStatus(in.Status)
	if in.Status == "" {
		in.Status = model.ProjectStatusPlanning
	}
	if in.Budget != nil && *in.Budget == 0 {
		in.Budget = nil
	}
	in.Timeline = optionalString(in.Timeline)
	in.CategoryID = optionalID(in.CategoryID)
	in.CityID = optionalID(in.CityID)

	missing, err := exists(ctx, "category_id", in.CategoryID, s.categories.GetByID)
	if err != nil {
		return model.Project{}, err
	}
	missingCity, err := exists(ctx, "city_id", in.CityID, s.cities.GetByID)
	if err != nil {
		return model.Project{}, err
	}
	if err := validateInput(&in, append(missing, missingCity...)...); err != nil {
		return model.Project{}, err
	}
	return model.Project{
		Title: in.Title, Description: in.Description, ProjectType: in.ProjectType,
		Budget: in.Budget, Timeline: in.Timeline, Status: in.Status,
		CategoryID: in.CategoryID, CityID: in.CityID,
	}, nil
}

func (s *projectService) Create(ctx context.Context, in ProjectInput) (model.Project, error) {
	p, err := s.build(ctx, in)
	if err != nil {
		return model.Project{}, err
	}
	out, err := s.projects.Create(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Str("title", p.Title).Msg("create project failed")
		return model.Project{}, err
	}
	s.log.Info().Int64("project_id", out.ID).Msg("project created")
	return out, nil
}

func (s *projectService) Update(ctx context.Context, id int64, in ProjectInput) (model.Project, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return model.Project{}, err
	}
	p, err := s.build(ctx, in)
	if err != nil {
		return model.Project{}, err
	}
	p.ID = id
	out, err := s.projects.Update(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int64("project_id", id).Msg("update project failed")
		return model.Project{}, err
	}
	return out, nil
}

// List accepts the public status aliases such as "en-marcha".
func (s *projectService) List(ctx context.Context, f repository.ProjectFilter, page repository.Page) (repository.PageResult[model.Project], error) {
	f.Status = NormalizeProjectStatus(f.Status)
	f.CityID = optionalID(f.CityID)
	return s.projects.List(ctx, f, normalizePage(page))
}
