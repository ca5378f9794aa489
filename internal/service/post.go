package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/pagination"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

type postService struct {
	crud[model.Post]
	posts      repository.PostRepository
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository, logger zerolog.Logger) PostService {
	l := childLogger(logger, "post")
	return &postService{crud: crud[model.Post]{store: posts, log: l}, posts: posts, categories: categories, log: l}
}

func (in *PostInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.CategoryID = optionalID(in.CategoryID)
}

func (s *postService) check(ctx context.Context, in *PostInput) error {
	in.normalize()
	missing, err := exists(ctx, "category_id", in.CategoryID, s.categories.GetByID)
	if err != nil {
		return err
	}
	if err := validateInput(in, missing...); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("post validation failed")
		return err
	}
	return nil
}

func (s *postService) Create(ctx context.Context, in PostInput) (model.Post, error) {
	start := time.Now()
	if err := s.check(ctx, &in); err != nil {
		return model.Post{}, err
	}
	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	out, err := s.posts.Create(ctx, model.Post{
		Title: in.Title, Content: in.Content, Author: in.Author,
		IsPublished: published, CategoryID: in.CategoryID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("title", in.Title).Msg("create post failed")
		return model.Post{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("post_id", out.ID).Msg("post created")
	return out, nil
}

// Update replaces every field; a nil IsPublished keeps the stored flag.
func (s *postService) Update(ctx context.Context, id int64, in PostInput) (model.Post, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	if err := s.check(ctx, &in); err != nil {
		return model.Post{}, err
	}
	current.Title, current.Content, current.Author, current.CategoryID = in.Title, in.Content, in.Author, in.CategoryID
	if in.IsPublished != nil {
		current.IsPublished = *in.IsPublished
	}
	out, err := s.posts.Update(ctx, current)
	if err != nil {
		s.log.Error().Err(err).Int64("post_id", id).Msg("update post failed")
		return model.Post{}, err
	}
	s.log.Info().Int64("post_id", id).Msg("post updated")
	return out, nil
}

func (s *postService) Patch(ctx context.Context, id int64, p PostPatch) (model.Post, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	in := PostInput{Title: current.Title, Content: current.Content, Author: current.Author, CategoryID: current.CategoryID}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Content != nil {
		in.Content = *p.Content
	}
	if p.Author != nil {
		in.Author = *p.Author
	}
	if p.CategoryID != nil {
		// zero clears the category
		in.CategoryID = p.CategoryID
	}
	in.IsPublished = p.IsPublished
	return s.Update(ctx, id, in)
}

func (s *postService) List(ctx context.Context, publishedOnly bool, page repository.Page) (repository.PageResult[model.Post], error) {
	p := normalizePage(page)
	res, err := s.posts.List(ctx, repository.PostFilter{PublishedOnly: publishedOnly}, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list posts failed")
		return repository.PageResult[model.Post]{}, err
	}
	return res, nil
}

func (s *postService) ListPublished(ctx context.Context, categoryID *int64, page, perPage int) (Listing[model.Post], error) {
	return s.listing(ctx, repository.PostFilter{PublishedOnly: true, CategoryID: categoryID}, page, perPage)
}

// Search matches title or content of published posts; a blank query matches nothing.
func (s *postService) Search(ctx context.Context, query string, page, perPage int) (Listing[model.Post], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		if perPage <= 0 {
			return Listing[model.Post]{}, NewInvalidInputError("per_page", "must be > 0")
		}
		return Listing[model.Post]{Items: []model.Post{}, Page: max(page, 1), PerPage: perPage}, nil
	}
	return s.listing(ctx, repository.PostFilter{PublishedOnly: true, Query: query}, page, perPage)
}

func (s *postService) listing(ctx context.Context, f repository.PostFilter, page, perPage int) (Listing[model.Post], error) {
	page, window, err := pageWindow(page, perPage)
	if err != nil {
		return Listing[model.Post]{}, err
	}
	res, err := s.posts.List(ctx, f, window)
	if err != nil {
		s.log.Error().Err(err).Int("page", page).Msg("list published posts failed")
		return Listing[model.Post]{}, err
	}
	return Listing[model.Post]{
		Items:      res.Items,
		Total:      res.Total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: pagination.TotalPages(res.Total, perPage),
	}, nil
}

func (s *postService) Recent(ctx context.Context, limit int) ([]model.Post, error) {
	return s.posts.Recent(ctx, limit)
}
