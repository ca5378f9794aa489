package sqlite

import (
	"database/sql"

	"github.com/maxviazov/railway-blog-service/internal/repository"
)

type options struct {
	clock repository.Clock
}

// Option tunes the repositories built by NewStore.
type Option func(*options)

// WithClock replaces the timestamp source used for created_at and updated_at.
func WithClock(c repository.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// NewStore wires every repository onto one database handle. Closing the store closes the handle.
func NewStore(db *sql.DB, opts ...Option) *repository.Store {
	o := options{clock: repository.SystemClock}
	for _, opt := range opts {
		opt(&o)
	}
	return &repository.Store{
		Posts:      NewPostRepository(db, o.clock),
		Pages:      NewPageRepository(db, o.clock),
		Lines:      NewLineRepository(db, o.clock),
		Stations:   NewStationRepository(db, o.clock),
		Projects:   NewProjectRepository(db, o.clock),
		Events:     NewEventRepository(db, o.clock),
		Cities:     NewCityRepository(db, o.clock),
		Categories: NewCategoryRepository(db, o.clock),
		Tx:         NewTxManager(db),
		Pinger:     NewPinger(db),
		Closer:     db,
	}
}
