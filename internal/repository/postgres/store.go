package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

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

type poolCloser struct{ pool *pgxpool.Pool }

func (c poolCloser) Close() error {
	c.pool.Close()
	return nil
}

// NewStore wires every repository onto one pool. Closing the store closes the pool.
func NewStore(pool *pgxpool.Pool, opts ...Option) *repository.Store {
	o := options{clock: repository.SystemClock}
	for _, opt := range opts {
		opt(&o)
	}
	return &repository.Store{
		Posts:      NewPostRepository(pool, o.clock),
		Pages:      NewPageRepository(pool, o.clock),
		Lines:      NewLineRepository(pool, o.clock),
		Stations:   NewStationRepository(pool, o.clock),
		Projects:   NewProjectRepository(pool, o.clock),
		Events:     NewEventRepository(pool, o.clock),
		Cities:     NewCityRepository(pool, o.clock),
		Categories: NewCategoryRepository(pool, o.clock),
		Tx:         NewTxManager(pool),
		Pinger:     NewPinger(pool),
		Closer:     poolCloser{pool: pool},
	}
}
