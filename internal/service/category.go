package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/slug"
)

type categoryService struct {
	crud[model.Category]
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func NewCategoryService(categories repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	l := childLogger(logger, "category")
	return &categoryService{crud: crud[model.Category]{store: categories, log: l}, categories: categories, log: l}
}

func (s *categoryService) build(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = slug.Make(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	in.Description = optionalString(in.Description)
	in.ParentID = optionalID(in.ParentID)

	missing, err := exists(ctx, "parent_id", in.ParentID, s.categories.GetByID)
	if err != nil {
		return model.Category{}, err
	}
	if id != 0 && in.ParentID != nil && *in.ParentID == id {
		missing = append(missing, FieldError{Field: "parent_id", Message: "must not reference itself"})
	}
	if err := validateInput(&in, missing...); err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: id, Name: in.Name, Slug: in.Slug, Description: in.Description, ParentID: in.ParentID}, nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	c, err := s.build(ctx, 0, in)
	if err != nil {
		return model.Category{}, err
	}
	out, err := s.categories.Create(ctx, c)
	if err != nil {
		s.log.Error().Err(err).Str("slug", c.Slug).Msg("create category failed")
		return model.Category{}, err
	}
	s.log.Info().Int64("category_id", out.ID).Str("slug", out.Slug).Msg("category created")
	return out, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (model.Category, error) {
	return s.categories.GetBySlug(ctx, categorySlug)
}

func (s *categoryService) Update(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return model.Category{}, err
	}
	c, err := s.build(ctx, id, in)
	if err != nil {
		return model.Category{}, err
	}
	out, err := s.categories.Update(ctx, c)
	if err != nil {
		s.log.Error().Err(err).Int64("category_id", id).Msg("update category failed")
		return model.Category{}, err
	}
	return out, nil
}

func (s *categoryService) List(ctx context.Context, page repository.Page) (repository.PageResult[model.Category], error) {
	return s.categories.List(ctx, normalizePage(page))
}
