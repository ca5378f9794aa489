package repository

import (
	"context"
	"io"

	"github.com/maxviazov/railway-blog-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PostFilter narrows post listings. Query matches title or content, case-insensitively.
type PostFilter struct {
	PublishedOnly bool
	CategoryID    *int64
	Query         string
}

// LineFilter narrows line listings; empty fields do not filter.
// City matches an exact entry of CitiesServed.
type LineFilter struct {
	GaugeType string
	Status    string
	City      string
}

// StationFilter narrows station listings; empty fields do not filter.
type StationFilter struct {
	StationType string
	Province    string
	CityID      *int64
}

// ProjectFilter narrows project listings; empty fields do not filter.
type ProjectFilter struct {
	Status string
	CityID *int64
}

// CityFilter narrows city listings. Name matches a substring, case-insensitively.
type CityFilter struct {
	Name string
}

// PostRepository declares persistence operations for posts.
// List and Recent order by last modification (update, then creation time) descending.
type PostRepository interface {
	Create(ctx context.Context, p model.Post) (model.Post, error)
	GetByID(ctx context.Context, id int64) (model.Post, error)
	Update(ctx context.Context, p model.Post) (model.Post, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f PostFilter, p Page) (PageResult[model.Post], error)
	Count(ctx context.Context, f PostFilter) (int, error)
	// Recent returns published posts only.
	Recent(ctx context.Context, limit int) ([]model.Post, error)
}

// PageRepository declares persistence operations for static pages.
type PageRepository interface {
	Create(ctx context.Context, p model.Page) (model.Page, error)
	GetByID(ctx context.Context, id int64) (model.Page, error)
	GetBySlug(ctx context.Context, slug string) (model.Page, error)
	Update(ctx context.Context, p model.Page) (model.Page, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, publishedOnly bool, p Page) (PageResult[model.Page], error)
}

// LineRepository declares persistence operations for railway lines.
type LineRepository interface {
	Create(ctx context.Context, l model.Line) (model.Line, error)
	GetByID(ctx context.Context, id int64) (model.Line, error)
	Update(ctx context.Context, l model.Line) (model.Line, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f LineFilter, p Page) (PageResult[model.Line], error)
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]model.Line, error)
}

// StationRepository declares persistence operations for stations.
type StationRepository interface {
	Create(ctx context.Context, s model.Station) (model.Station, error)
	GetByID(ctx context.Context, id int64) (model.Station, error)
	Update(ctx context.Context, s model.Station) (model.Station, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f StationFilter, p Page) (PageResult[model.Station], error)
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]model.Station, error)
}

// ProjectRepository declares persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p model.Project) (model.Project, error)
	GetByID(ctx context.Context, id int64) (model.Project, error)
	Update(ctx context.Context, p model.Project) (model.Project, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ProjectFilter, p Page) (PageResult[model.Project], error)
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]model.Project, error)
}

// EventRepository declares persistence operations for events.
// List orders by event date, latest first.
type EventRepository interface {
	Create(ctx context.Context, e model.Event) (model.Event, error)
	GetByID(ctx context.Context, id int64) (model.Event, error)
	Update(ctx context.Context, e model.Event) (model.Event, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p Page) (PageResult[model.Event], error)
}

// CityRepository declares persistence operations for cities.
type CityRepository interface {
	Create(ctx context.Context, c model.City) (model.City, error)
	GetByID(ctx context.Context, id int64) (model.City, error)
	GetBySlug(ctx context.Context, slug string) (model.City, error)
	Update(ctx context.Context, c model.City) (model.City, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f CityFilter, p Page) (PageResult[model.City], error)
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]model.City, error)
}

// CategoryRepository declares persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c model.Category) (model.Category, error)
	GetByID(ctx context.Context, id int64) (model.Category, error)
	GetBySlug(ctx context.Context, slug string) (model.Category, error)
	Update(ctx context.Context, c model.Category) (model.Category, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p Page) (PageResult[model.Category], error)
}

// Store bundles every repository of one backend.
// Backends fill it in; callers only close it when done.
type Store struct {
	Posts      PostRepository
	Pages      PageRepository
	Lines      LineRepository
	Stations   StationRepository
	Projects   ProjectRepository
	Events     EventRepository
	Cities     CityRepository
	Categories CategoryRepository
	Tx         TxManager
	Pinger     Pinger
	Closer     io.Closer
}

// Close releases the backend resources.
func (s *Store) Close() error {
	if s == nil || s.Closer == nil {
		return nil
	}
	return s.Closer.Close()
}
