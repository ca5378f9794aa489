// Package recent builds the cross-entity "recently changed" feed shown in the
// sidebar of every page. Each entity type contributes through a Source; the
// aggregator merges the candidates by timestamp without a unified storage query.
package recent

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
)

// DefaultOversample is the per-source fetch multiplier applied to the requested limit.
const DefaultOversample = 2

// Source yields the most recent entries of one entity type, newest first.
type Source interface {
	Type() model.EntityType
	Fetch(ctx context.Context, limit int) ([]model.RecentEntry, error)
}

// FetchFunc loads up to limit records ordered by last modification, newest first.
type FetchFunc[T any] func(ctx context.Context, limit int) ([]T, error)

// ProjectFunc maps a record onto a feed entry.
type ProjectFunc[T any] func(T) model.RecentEntry

type source[T any] struct {
	typ     model.EntityType
	fetch   FetchFunc[T]
	project ProjectFunc[T]
}

// NewSource pairs a fetch function with its projection. The entry type is
// forced to typ so projections only deal with title, URL and timestamp.
func NewSource[T any](typ model.EntityType, fetch FetchFunc[T], project ProjectFunc[T]) Source {
	return &source[T]{typ: typ, fetch: fetch, project: project}
}

func (s *source[T]) Type() model.EntityType { return s.typ }

func (s *source[T]) Fetch(ctx context.Context, limit int) ([]model.RecentEntry, error) {
	records, err := s.fetch(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.RecentEntry, 0, len(records))
	for _, r := range records {
		e := s.project(r)
		e.Type = s.typ
		out = append(out, e)
	}
	return out, nil
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithOversample overrides the per-source fetch multiplier. Values below 1 are ignored.
func WithOversample(n int) Option {
	return func(a *Aggregator) {
		if n >= 1 {
			a.oversample = n
		}
	}
}

// Aggregator merges several sources into one time-ordered list.
// It holds no per-request state and is safe for concurrent use.
type Aggregator struct {
	sources    []Source
	oversample int
	log        zerolog.Logger
}

// New builds an Aggregator over sources, queried in the given order.
func New(logger zerolog.Logger, sources []Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		sources:    slices.Clone(sources),
		oversample: DefaultOversample,
		log:        logger.With().Str("module", "recent").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build returns at most limit entries across all sources, newest first.
// Entries with equal timestamps keep source order. A failing source contributes
// nothing; Build itself never fails.
func (a *Aggregator) Build(ctx context.Context, limit int) []model.RecentEntry {
	if limit <= 0 {
		return []model.RecentEntry{}
	}
	perSource := limit * a.oversample

	var pool []model.RecentEntry
	for _, src := range a.sources {
		entries, err := a.fetch(ctx, src, perSource)
		if err != nil {
			a.log.Warn().Err(err).Str("source", string(src.Type())).Msg("recent source skipped")
			continue
		}
		pool = append(pool, entries...)
	}

	slices.SortStableFunc(pool, func(x, y model.RecentEntry) int {
		return y.LastModified.Compare(x.LastModified)
	})
	if len(pool) > limit {
		pool = pool[:limit]
	}
	if pool == nil {
		pool = []model.RecentEntry{}
	}
	return pool
}

func (a *Aggregator) fetch(ctx context.Context, src Source, limit int) (entries []model.RecentEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("source panicked: %v", r)
		}
	}()
	return src.Fetch(ctx, limit)
}
