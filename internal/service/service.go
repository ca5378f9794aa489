// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError reports a single bad field; handlers use it for malformed query or path values.
func NewInvalidInputError(field, message string) error {
	return newInvalidInput([]FieldError{{Field: field, Message: message}})
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// Listing is one page of a paginated use case together with what the paginator needs.
type Listing[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// PostService covers articles, public listings and the JSON API.
type PostService interface {
	Create(ctx context.Context, in PostInput) (model.Post, error)
	Get(ctx context.Context, id int64) (model.Post, error)
	Update(ctx context.Context, id int64, in PostInput) (model.Post, error)
	Patch(ctx context.Context, id int64, in PostPatch) (model.Post, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, publishedOnly bool, page repository.Page) (repository.PageResult[model.Post], error)
	ListPublished(ctx context.Context, categoryID *int64, page, perPage int) (Listing[model.Post], error)
	Search(ctx context.Context, query string, page, perPage int) (Listing[model.Post], error)
	Recent(ctx context.Context, limit int) ([]model.Post, error)
}

// PageService covers static pages.
type PageService interface {
	Create(ctx context.Context, in PageInput) (model.Page, error)
	Get(ctx context.Context, id int64) (model.Page, error)
	GetBySlug(ctx context.Context, slug string, includeDrafts bool) (model.Page, error)
	Update(ctx context.Context, id int64, in PageInput) (model.Page, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, publishedOnly bool, page repository.Page) (repository.PageResult[model.Page], error)
}

// LineService covers railway lines.
type LineService interface {
	Create(ctx context.Context, in LineInput) (model.Line, error)
	Get(ctx context.Context, id int64) (model.Line, error)
	Update(ctx context.Context, id int64, in LineInput) (model.Line, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.LineFilter, page repository.Page) (repository.PageResult[model.Line], error)
}

// StationService covers stations.
type StationService interface {
	Create(ctx context.Context, in StationInput) (model.Station, error)
	Get(ctx context.Context, id int64) (model.Station, error)
	Update(ctx context.Context, id int64, in StationInput) (model.Station, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.StationFilter, page repository.Page) (repository.PageResult[model.Station], error)
}

// ProjectService covers infrastructure projects.
type ProjectService interface {
	Create(ctx context.Context, in ProjectInput) (model.Project, error)
	Get(ctx context.Context, id int64) (model.Project, error)
	Update(ctx context.Context, id int64, in ProjectInput) (model.Project, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.ProjectFilter, page repository.Page) (repository.PageResult[model.Project], error)
}

// EventService covers dated events.
type EventService interface {
	Create(ctx context.Context, in EventInput) (model.Event, error)
	Get(ctx context.Context, id int64) (model.Event, error)
	Update(ctx context.Context, id int64, in EventInput) (model.Event, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page repository.Page) (repository.PageResult[model.Event], error)
}

// CityService covers cities and their related content.
type CityService interface {
	Create(ctx context.Context, in CityInput) (model.City, error)
	Get(ctx context.Context, id int64) (model.City, error)
	GetBySlug(ctx context.Context, slug string) (model.City, error)
	Update(ctx context.Context, id int64, in CityInput) (model.City, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.CityFilter, page repository.Page) (repository.PageResult[model.City], error)
	Related(ctx context.Context, city model.City) (model.CityRelated, error)
}

// CategoryService covers the post/line/project taxonomy.
type CategoryService interface {
	Create(ctx context.Context, in CategoryInput) (model.Category, error)
	Get(ctx context.Context, id int64) (model.Category, error)
	GetBySlug(ctx context.Context, slug string) (model.Category, error)
	Update(ctx context.Context, id int64, in CategoryInput) (model.Category, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page repository.Page) (repository.PageResult[model.Category], error)
}

// DashboardService gathers the admin overview.
type DashboardService interface {
	Overview(ctx context.Context) (Dashboard, error)
}
