package seed_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/repository/sqlite"
	"github.com/maxviazov/railway-blog-service/internal/seed"
)

func newSeeder(t *testing.T) (*seed.Seeder, *repository.Store) {
	t.Helper()
	ctx := context.Background()
	log := zerolog.New(io.Discard)
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "seed.db"), log)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db, log))
	store := sqlite.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return seed.New(store, log), store
}

func TestRun_Categories(t *testing.T) {
	s, store := newSeeder(t)
	ctx := context.Background()

	res, err := s.Run(ctx, seed.SetCategories)
	require.NoError(t, err)
	assert.Equal(t, 3, res["categories"])

	c, err := store.Categories.GetBySlug(ctx, "curiosidades")
	require.NoError(t, err)
	assert.Equal(t, "Curiosidades", c.Name)

	res, err = s.Run(ctx, seed.SetCategories)
	require.NoError(t, err)
	assert.Zero(t, res["categories"])
}

func TestRun_CitiesSkippedWhenPresent(t *testing.T) {
	s, store := newSeeder(t)
	ctx := context.Background()

	res, err := s.Run(ctx, seed.SetCities)
	require.NoError(t, err)
	assert.Equal(t, 20, res["cities"])

	coruna, err := store.Cities.GetBySlug(ctx, "a-coruna")
	require.NoError(t, err)
	assert.Equal(t, "A Coruña", coruna.Name)
	assert.Equal(t, "Spain", coruna.Country)

	res, err = s.Run(ctx, seed.SetCities)
	require.NoError(t, err)
	assert.Zero(t, res["cities"])
}

func TestRun_SampleIsIdempotent(t *testing.T) {
	s, store := newSeeder(t)
	ctx := context.Background()

	res, err := s.Run(ctx, seed.SetSample)
	require.NoError(t, err)
	assert.Equal(t, 7, res["categories"])
	assert.Equal(t, 20, res["cities"])
	assert.Equal(t, 6, res["lines"])
	assert.Equal(t, 6, res["stations"])
	assert.Equal(t, 4, res["projects"])
	assert.Equal(t, 3, res["events"])
	assert.Equal(t, 4, res["posts"])
	assert.Equal(t, 1, res["pages"])

	hsr, err := store.Categories.GetBySlug(ctx, "alta-velocidad")
	require.NoError(t, err)
	infra, err := store.Categories.GetBySlug(ctx, "infraestructura")
	require.NoError(t, err)
	require.NotNil(t, hsr.ParentID)
	assert.Equal(t, infra.ID, *hsr.ParentID)

	published, err := store.Posts.Count(ctx, repository.PostFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 3, published)

	cordoba, err := store.Lines.List(ctx, repository.LineFilter{City: "Córdoba"}, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, cordoba.Total)

	again, err := s.Run(ctx, seed.SetSample)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestRun_UnknownSet(t *testing.T) {
	s, _ := newSeeder(t)
	_, err := s.Run(context.Background(), "everything")
	assert.ErrorContains(t, err, "unknown seed set")
}
