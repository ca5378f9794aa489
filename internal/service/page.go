package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/slug"
)

type pageService struct {
	crud[model.Page]
	pages repository.PageRepository
	log   zerolog.Logger
}

func NewPageService(pages repository.PageRepository, logger zerolog.Logger) PageService {
	l := childLogger(logger, "page")
	return &pageService{crud: crud[model.Page]{store: pages, log: l}, pages: pages, log: l}
}

func (in *PageInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = slug.Make(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Make(in.Title)
	}
}

func (s *pageService) Create(ctx context.Context, in PageInput) (model.Page, error) {
	in.normalize()
	if err := validateInput(&in); err != nil {
		return model.Page{}, err
	}
	published := in.IsPublished == nil || *in.IsPublished
	out, err := s.pages.Create(ctx, model.Page{Title: in.Title, Slug: in.Slug, Content: in.Content, IsPublished: published})
	if err != nil {
		s.log.Error().Err(err).Str("slug", in.Slug).Msg("create page failed")
		return model.Page{}, err
	}
	s.log.Info().Int64("page_id", out.ID).Str("slug", out.Slug).Msg("page created")
	return out, nil
}

// GetBySlug hides drafts from the public unless includeDrafts is set.
func (s *pageService) GetBySlug(ctx context.Context, pageSlug string, includeDrafts bool) (model.Page, error) {
	p, err := s.pages.GetBySlug(ctx, pageSlug)
	if err != nil {
		return model.Page{}, err
	}
	if !p.IsPublished && !includeDrafts {
		return model.Page{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *pageService) Update(ctx context.Context, id int64, in PageInput) (model.Page, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.Page{}, err
	}
	in.normalize()
	if err := validateInput(&in); err != nil {
		return model.Page{}, err
	}
	current.Title, current.Slug, current.Content = in.Title, in.Slug, in.Content
	if in.IsPublished != nil {
		current.IsPublished = *in.IsPublished
	}
	out, err := s.pages.Update(ctx, current)
	if err != nil {
		s.log.Error().Err(err).Int64("page_id", id).Msg("update page failed")
		return model.Page{}, err
	}
	return out, nil
}

func (s *pageService) List(ctx context.Context, publishedOnly bool, page repository.Page) (repository.PageResult[model.Page], error) {
	return s.pages.List(ctx, publishedOnly, normalizePage(page))
}
