// Package contract holds backend-agnostic test suites for the repository interfaces.
// Each backend wires them up with a factory that returns a fresh, empty store.
package contract

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

// StoreFactory returns an empty store stamped by clock, plus a cleanup func.
type StoreFactory func(t *testing.T, clock repository.Clock) (*repository.Store, func())

// TickingClock advances by one second on every reading, so insertion order is recency order.
type TickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewTickingClock() *TickingClock {
	return &TickingClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *TickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T, makeStore StoreFactory) (*repository.Store, context.Context) {
	t.Helper()
	store, cleanup := makeStore(t, NewTickingClock().Now)
	t.Cleanup(cleanup)
	return store, context.Background()
}

func RunPostRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		cat, err := store.Categories.Create(ctx, model.Category{Name: "Noticias", Slug: "noticias"})
		require.NoError(t, err)
		created, err := store.Posts.Create(ctx, model.Post{Title: "Hola", Content: "<p>x</p>", Author: "Ana", IsPublished: true, CategoryID: &cat.ID})
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.True(t, created.UpdatedAt.IsZero(), "new rows have no update stamp")
		assert.Equal(t, created.CreatedAt, created.LastModified())

		got, err := store.Posts.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("get_not_found", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		_, err := store.Posts.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update_sets_updated_at", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		created, err := store.Posts.Create(ctx, model.Post{Title: "A", Content: "c", Author: "x", IsPublished: true})
		require.NoError(t, err)
		created.Title = "B"
		updated, err := store.Posts.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "B", updated.Title)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
		assert.Equal(t, updated.UpdatedAt, updated.LastModified())

		_, err = store.Posts.Update(ctx, model.Post{ID: 424242, Title: "x", Content: "x", Author: "x"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		created, err := store.Posts.Create(ctx, model.Post{Title: "A", Content: "c", Author: "x"})
		require.NoError(t, err)
		require.NoError(t, store.Posts.Delete(ctx, created.ID))
		assert.ErrorIs(t, store.Posts.Delete(ctx, created.ID), repository.ErrNotFound)
	})

	t.Run("unknown_category_conflict", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		_, err := store.Posts.Create(ctx, model.Post{Title: "A", Content: "c", Author: "x", CategoryID: ptr(int64(9999))})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("list_filters_and_totals", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		news, err := store.Categories.Create(ctx, model.Category{Name: "Noticias", Slug: "noticias"})
		require.NoError(t, err)
		for i := 0; i < 7; i++ {
			_, err := store.Posts.Create(ctx, model.Post{
				Title: fmt.Sprintf("Tren %d", i), Content: "contenido", Author: "a",
				IsPublished: i%3 != 0, CategoryID: &news.ID,
			})
			require.NoError(t, err)
		}
		_, err = store.Posts.Create(ctx, model.Post{Title: "Sin categoria", Content: "100% AVE_test", Author: "a", IsPublished: true})
		require.NoError(t, err)

		res, err := store.Posts.List(ctx, repository.PostFilter{PublishedOnly: true, CategoryID: &news.ID}, repository.Page{Limit: 3})
		require.NoError(t, err)
		assert.Len(t, res.Items, 3)
		assert.Equal(t, 4, res.Total)
		for _, p := range res.Items {
			assert.True(t, p.IsPublished)
		}

		past, err := store.Posts.List(ctx, repository.PostFilter{PublishedOnly: true}, repository.Page{Limit: 3, Offset: 30})
		require.NoError(t, err)
		assert.Empty(t, past.Items)
		assert.Equal(t, 5, past.Total, "total survives an out-of-range window")

		n, err := store.Posts.Count(ctx, repository.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, 8, n)

		search, err := store.Posts.List(ctx, repository.PostFilter{Query: "tren 1"}, repository.Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, search.Items, 1)
		assert.Equal(t, "Tren 1", search.Items[0].Title)

		wild, err := store.Posts.Count(ctx, repository.PostFilter{Query: "100%"})
		require.NoError(t, err)
		assert.Equal(t, 1, wild)
		escaped, err := store.Posts.Count(ctx, repository.PostFilter{Query: "ren_1"})
		require.NoError(t, err)
		assert.Equal(t, 0, escaped, "underscore is matched literally")
	})

	t.Run("list_orders_by_last_modification", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		first, err := store.Posts.Create(ctx, model.Post{Title: "first", Content: "c", Author: "a", IsPublished: true})
		require.NoError(t, err)
		_, err = store.Posts.Create(ctx, model.Post{Title: "second", Content: "c", Author: "a", IsPublished: true})
		require.NoError(t, err)
		_, err = store.Posts.Create(ctx, model.Post{Title: "third", Content: "c", Author: "a", IsPublished: true})
		require.NoError(t, err)
		first.Content = "edited"
		_, err = store.Posts.Update(ctx, first)
		require.NoError(t, err)

		res, err := store.Posts.List(ctx, repository.PostFilter{}, repository.Page{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "third", "second"}, postTitles(res.Items))
	})

	t.Run("recent_published_only", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		for i := 0; i < 4; i++ {
			_, err := store.Posts.Create(ctx, model.Post{Title: fmt.Sprintf("p%d", i), Content: "c", Author: "a", IsPublished: i != 3})
			require.NoError(t, err)
		}
		got, err := store.Posts.Recent(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"p2", "p1"}, postTitles(got))

		none, err := store.Posts.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func postTitles(ps []model.Post) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func RunPageRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("crud_by_slug", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		created, err := store.Pages.Create(ctx, model.Page{Title: "Acerca", Slug: "acerca", Content: "x", IsPublished: true})
		require.NoError(t, err)
		got, err := store.Pages.GetBySlug(ctx, "acerca")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		_, err = store.Pages.Create(ctx, model.Page{Title: "Otra", Slug: "acerca"})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)

		got.IsPublished = false
		_, err = store.Pages.Update(ctx, got)
		require.NoError(t, err)
		res, err := store.Pages.List(ctx, true, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		res, err = store.Pages.List(ctx, false, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)

		require.NoError(t, store.Pages.Delete(ctx, got.ID))
		_, err = store.Pages.GetBySlug(ctx, "acerca")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func RunLineRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("create_get_lists_round_trip", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		created, err := store.Lines.Create(ctx, model.Line{
			LineNumber: "C-1", Description: "Cercanías", Status: model.LineStatusActive,
			GaugeType: ptr("iberico"), CitiesServed: []string{"Madrid", "Alcalá de Henares"},
		})
		require.NoError(t, err)
		got, err := store.Lines.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Madrid", "Alcalá de Henares"}, got.CitiesServed)
		require.NotNil(t, got.GaugeType)
		assert.Equal(t, "iberico", *got.GaugeType)

		empty, err := store.Lines.Create(ctx, model.Line{LineNumber: "C-2", Status: model.LineStatusActive})
		require.NoError(t, err)
		assert.NotNil(t, empty.CitiesServed)
		assert.Empty(t, empty.CitiesServed)
		assert.Nil(t, empty.GaugeType)
	})

	t.Run("duplicate_number", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		_, err := store.Lines.Create(ctx, model.Line{LineNumber: "R1", Status: model.LineStatusActive})
		require.NoError(t, err)
		_, err = store.Lines.Create(ctx, model.Line{LineNumber: "R1", Status: model.LineStatusActive})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})

	t.Run("filters", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		seed := []model.Line{
			{LineNumber: "A", Status: model.LineStatusActive, GaugeType: ptr("iberico"), CitiesServed: []string{"Sevilla"}},
			{LineNumber: "B", Status: model.LineStatusClosed, GaugeType: ptr("metrico"), CitiesServed: []string{"Bilbao", "Sevilla"}},
			{LineNumber: "C", Status: model.LineStatusActive, GaugeType: ptr("metrico")},
		}
		for _, l := range seed {
			_, err := store.Lines.Create(ctx, l)
			require.NoError(t, err)
		}
		res, err := store.Lines.List(ctx, repository.LineFilter{GaugeType: "metrico"}, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		res, err = store.Lines.List(ctx, repository.LineFilter{GaugeType: "metrico", Status: model.LineStatusActive}, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		res, err = store.Lines.List(ctx, repository.LineFilter{City: "Sevilla"}, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		n, err := store.Lines.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("recent_prefers_updates", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		a, err := store.Lines.Create(ctx, model.Line{LineNumber: "A", Status: model.LineStatusActive})
		require.NoError(t, err)
		_, err = store.Lines.Create(ctx, model.Line{LineNumber: "B", Status: model.LineStatusActive})
		require.NoError(t, err)
		a.Description = "touched"
		_, err = store.Lines.Update(ctx, a)
		require.NoError(t, err)
		got, err := store.Lines.Recent(ctx, 5)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "A", got[0].LineNumber)
	})
}

func RunStationRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("crud_and_filters", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		city, err := store.Cities.Create(ctx, model.City{Name: "Madrid", Slug: "madrid", Region: "Madrid", Country: model.DefaultCountry})
		require.NoError(t, err)
		atocha, err := store.Stations.Create(ctx, model.Station{
			StationCode: "MAD-AT", Name: "Atocha", Services: []string{"wifi", "cafeteria"},
			StationType: ptr("principal"), Province: ptr("Madrid"), CityID: &city.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"wifi", "cafeteria"}, atocha.Services)
		assert.Empty(t, atocha.Accessibility)
		_, err = store.Stations.Create(ctx, model.Station{StationCode: "SEV-SJ", Name: "Santa Justa", StationType: ptr("principal"), Province: ptr("Sevilla")})
		require.NoError(t, err)
		_, err = store.Stations.Create(ctx, model.Station{StationCode: "MAD-AT", Name: "Dup"})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)

		res, err := store.Stations.List(ctx, repository.StationFilter{StationType: "principal"}, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, "Atocha", res.Items[0].Name)
		res, err = store.Stations.List(ctx, repository.StationFilter{CityID: &city.ID}, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		res, err = store.Stations.List(ctx, repository.StationFilter{Province: "sevi"}, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)

		// deleting the city detaches its stations
		require.NoError(t, store.Cities.Delete(ctx, city.ID))
		got, err := store.Stations.GetByID(ctx, atocha.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CityID)
	})
}

func RunProjectRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("crud_and_filters", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		p, err := store.Projects.Create(ctx, model.Project{Title: "Corredor Mediterráneo", Status: model.ProjectStatusConstruction, Budget: ptr(1.5e9)})
		require.NoError(t, err)
		require.NotNil(t, p.Budget)
		assert.InDelta(t, 1.5e9, *p.Budget, 0.1)
		_, err = store.Projects.Create(ctx, model.Project{Title: "Variante", Status: model.ProjectStatusPlanning})
		require.NoError(t, err)

		res, err := store.Projects.List(ctx, repository.ProjectFilter{Status: model.ProjectStatusPlanning}, repository.Page{})
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		assert.Equal(t, "Variante", res.Items[0].Title)

		p.Status = model.ProjectStatusCompleted
		updated, err := store.Projects.Update(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, model.ProjectStatusCompleted, updated.Status)

		n, err := store.Projects.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		recent, err := store.Projects.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, p.ID, recent[0].ID)
	})
}

func RunEventRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("list_latest_first", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		for _, d := range []int{3, 20, 11} {
			_, err := store.Events.Create(ctx, model.Event{
				Title: fmt.Sprintf("e%d", d), EventDate: time.Date(2025, 5, d, 0, 0, 0, 0, time.UTC), EventTime: ptr("10:30"),
			})
			require.NoError(t, err)
		}
		res, err := store.Events.List(ctx, repository.Page{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "e20", res.Items[0].Title)
		assert.Equal(t, "e11", res.Items[1].Title)
		assert.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), res.Items[0].EventDate)
		require.NotNil(t, res.Items[0].EventTime)
		assert.Equal(t, "10:30", *res.Items[0].EventTime)
	})
}

func RunCityRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("slug_lookup_and_filter", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		_, err := store.Cities.Create(ctx, model.City{Name: "A Coruña", Slug: "a-coruna", Region: "Galicia", Country: model.DefaultCountry})
		require.NoError(t, err)
		_, err = store.Cities.Create(ctx, model.City{Name: "Valencia", Slug: "valencia", Region: "Comunidad Valenciana", Country: model.DefaultCountry})
		require.NoError(t, err)
		_, err = store.Cities.Create(ctx, model.City{Name: "Otra", Slug: "valencia"})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)

		got, err := store.Cities.GetBySlug(ctx, "a-coruna")
		require.NoError(t, err)
		assert.Equal(t, "A Coruña", got.Name)
		_, err = store.Cities.GetBySlug(ctx, "nowhere")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		res, err := store.Cities.List(ctx, repository.CityFilter{Name: "VAL"}, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)

		recent, err := store.Cities.Recent(ctx, 5)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "Valencia", recent[0].Name)
	})
}

func RunCategoryRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("hierarchy", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		parent, err := store.Categories.Create(ctx, model.Category{Name: "Noticias", Slug: "noticias", Description: ptr("Actualidad")})
		require.NoError(t, err)
		child, err := store.Categories.Create(ctx, model.Category{Name: "Alta velocidad", Slug: "alta-velocidad", ParentID: &parent.ID})
		require.NoError(t, err)
		res, err := store.Categories.List(ctx, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)

		require.NoError(t, store.Categories.Delete(ctx, parent.ID))
		got, err := store.Categories.GetBySlug(ctx, "alta-velocidad")
		require.NoError(t, err)
		assert.Equal(t, child.ID, got.ID)
		assert.Nil(t, got.ParentID)
	})
}

func RunTxManagerContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("commit", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		err := store.Tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := store.Cities.Create(ctx, model.City{Name: "Tx", Slug: "tx"})
			return err
		})
		require.NoError(t, err)
		_, err = store.Cities.GetBySlug(ctx, "tx")
		assert.NoError(t, err)
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		boom := errors.New("boom")
		err := store.Tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := store.Cities.Create(ctx, model.City{Name: "Tx", Slug: "tx"}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		_, err = store.Cities.GetBySlug(ctx, "tx")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("nested_joins_outer", func(t *testing.T) {
		store, ctx := setup(t, makeStore)
		err := store.Tx.WithinTx(ctx, func(ctx context.Context) error {
			return store.Tx.WithinTx(ctx, func(ctx context.Context) error {
				_, err := store.Cities.Create(ctx, model.City{Name: "Inner", Slug: "inner"})
				return err
			})
		})
		require.NoError(t, err)
		_, err = store.Cities.GetBySlug(ctx, "inner")
		assert.NoError(t, err)
	})
}

func RunPingerContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()
	store, ctx := setup(t, makeStore)
	assert.NoError(t, store.Pinger.Ping(ctx))
}

// RunAll runs every suite against one backend.
func RunAll(t *testing.T, makeStore StoreFactory) {
	t.Run("posts", func(t *testing.T) { RunPostRepositoryContract(t, makeStore) })
	t.Run("pages", func(t *testing.T) { RunPageRepositoryContract(t, makeStore) })
	t.Run("lines", func(t *testing.T) { RunLineRepositoryContract(t, makeStore) })
	t.Run("stations", func(t *testing.T) { RunStationRepositoryContract(t, makeStore) })
	t.Run("projects", func(t *testing.T) { RunProjectRepositoryContract(t, makeStore) })
	t.Run("events", func(t *testing.T) { RunEventRepositoryContract(t, makeStore) })
	t.Run("cities", func(t *testing.T) { RunCityRepositoryContract(t, makeStore) })
	t.Run("categories", func(t *testing.T) { RunCategoryRepositoryContract(t, makeStore) })
	t.Run("tx", func(t *testing.T) { RunTxManagerContract(t, makeStore) })
	t.Run("ping", func(t *testing.T) { RunPingerContract(t, makeStore) })
}
