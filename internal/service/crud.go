package service

import (
	"context"

	"github.com/rs/zerolog"
)

type readDeleter[T any] interface {
	GetByID(ctx context.Context, id int64) (T, error)
	Delete(ctx context.Context, id int64) error
}

// crud supplies the Get and Delete use cases every entity service shares.
type crud[T any] struct {
	store readDeleter[T]
	log   zerolog.Logger
}

func (c crud[T]) Get(ctx context.Context, id int64) (T, error) {
	if err := requirePositiveID(id); err != nil {
		var zero T
		return zero, err
	}
	return c.store.GetByID(ctx, id)
}

func (c crud[T]) Delete(ctx context.Context, id int64) error {
	if err := requirePositiveID(id); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, id); err != nil {
		c.log.Error().Err(err).Int64("id", id).Msg("delete failed")
		return err
	}
	c.log.Info().Int64("id", id).Msg("deleted")
	return nil
}

func childLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("module", "service").Str("component", component).Logger()
}
