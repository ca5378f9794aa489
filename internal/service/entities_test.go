package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/service"
)

func TestNormalizeProjectStatus(t *testing.T) {
	cases := map[string]string{
		"cancelado":    model.ProjectStatusSuspended,
		"en-marcha":    model.ProjectStatusConstruction,
		" En-Estudio ": model.ProjectStatusPlanning,
		"actual":       model.ProjectStatusConstruction,
		"completed":    model.ProjectStatusCompleted,
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, service.NormalizeProjectStatus(in), in)
	}
}

func TestLineService_Normalizes(t *testing.T) {
	store := newStore(t)
	svc := service.NewLineService(store.Lines, store.Categories, discard)
	ctx := context.Background()

	l, err := svc.Create(ctx, service.LineInput{
		LineNumber: " C-4 ", Status: "Activa", GaugeType: ptr("Ibérico"),
		CitiesServed: []string{"Madrid, Parla", " ", "Getafe"},
	})
	require.NoError(t, err)
	assert.Equal(t, "C-4", l.LineNumber)
	assert.Equal(t, model.LineStatusActive, l.Status)
	assert.Equal(t, "iberico", *l.GaugeType)
	assert.Equal(t, []string{"Madrid", "Parla", "Getafe"}, l.CitiesServed)

	_, err = svc.Create(ctx, service.LineInput{LineNumber: "X", Status: "unknown"})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, "status", service.FieldErrors(err)[0].Field)

	_, err = svc.Create(ctx, service.LineInput{LineNumber: "C-4"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	res, err := svc.List(ctx, repository.LineFilter{GaugeType: "ibérico"}, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestProjectService_AliasesAndReferences(t *testing.T) {
	store := newStore(t)
	svc := service.NewProjectService(store.Projects, store.Categories, store.Cities, discard)
	ctx := context.Background()

	p, err := svc.Create(ctx, service.ProjectInput{Title: "Variante de Pajares", Status: "en-marcha", Budget: ptr(0.0)})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusConstruction, p.Status)
	assert.Nil(t, p.Budget)

	def, err := svc.Create(ctx, service.ProjectInput{Title: "Estudio"})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusPlanning, def.Status)

	_, err = svc.Create(ctx, service.ProjectInput{Title: "Huérfano", CityID: ptr(int64(99)), CategoryID: ptr(int64(98))})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Len(t, service.FieldErrors(err), 2)

	res, err := svc.List(ctx, repository.ProjectFilter{Status: "actual"}, repository.Page{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, p.ID, res.Items[0].ID)
}

func TestEventService_ParsesDate(t *testing.T) {
	store := newStore(t)
	svc := service.NewEventService(store.Events, store.Cities, discard)
	ctx := context.Background()

	e, err := svc.Create(ctx, service.EventInput{Title: "Jornada", EventDate: "2025-06-14", EventTime: ptr("18:30")})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), e.EventDate)
	assert.Equal(t, "18:30", *e.EventTime)

	_, err = svc.Create(ctx, service.EventInput{Title: "Mal", EventDate: "14/06/2025", EventTime: ptr("25:99")})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Len(t, service.FieldErrors(err), 2)
}

func TestCategoryService_SlugAndParent(t *testing.T) {
	store := newStore(t)
	svc := service.NewCategoryService(store.Categories, discard)
	ctx := context.Background()

	c, err := svc.Create(ctx, service.CategoryInput{Name: "Alta Velocidad", Description: ptr("  ")})
	require.NoError(t, err)
	assert.Equal(t, "alta-velocidad", c.Slug)
	assert.Nil(t, c.Description)

	_, err = svc.Update(ctx, c.ID, service.CategoryInput{Name: "Alta Velocidad", ParentID: &c.ID})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	got, err := svc.GetBySlug(ctx, "alta-velocidad")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestPageService_DraftsHidden(t *testing.T) {
	store := newStore(t)
	svc := service.NewPageService(store.Pages, discard)
	ctx := context.Background()

	p, err := svc.Create(ctx, service.PageInput{Title: "Quiénes somos", IsPublished: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "quienes-somos", p.Slug)

	_, err = svc.GetBySlug(ctx, "quienes-somos", false)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.GetBySlug(ctx, "quienes-somos", true)
	assert.NoError(t, err)
}

func TestCityService_Related(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	cities := service.NewCityService(store, discard)

	sevilla, err := cities.Create(ctx, service.CityInput{Name: "Sevilla", Region: "Andalucía"})
	require.NoError(t, err)
	assert.Equal(t, "sevilla", sevilla.Slug)
	assert.Equal(t, model.DefaultCountry, sevilla.Country)
	cadiz, err := cities.Create(ctx, service.CityInput{Name: "Cádiz"})
	require.NoError(t, err)

	_, err = store.Lines.Create(ctx, model.Line{LineNumber: "C-1", Status: model.LineStatusActive, CitiesServed: []string{"Sevilla", "Utrera"}})
	require.NoError(t, err)
	_, err = store.Lines.Create(ctx, model.Line{LineNumber: "C-2", Status: model.LineStatusActive, CitiesServed: []string{"Cádiz"}})
	require.NoError(t, err)
	_, err = store.Stations.Create(ctx, model.Station{StationCode: "SJ", Name: "Santa Justa", CityID: &sevilla.ID})
	require.NoError(t, err)
	_, err = store.Projects.Create(ctx, model.Project{Title: "Soterramiento", Status: model.ProjectStatusPlanning, CityID: &cadiz.ID})
	require.NoError(t, err)

	rel, err := cities.Related(ctx, sevilla)
	require.NoError(t, err)
	require.Len(t, rel.Lines, 1)
	assert.Equal(t, "C-1", rel.Lines[0].LineNumber)
	require.Len(t, rel.Stations, 1)
	assert.Empty(t, rel.Projects)
}

func TestDashboardService_Overview(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := store.Posts.Create(ctx, model.Post{Title: "p", Content: "c", Author: "a", IsPublished: i%2 == 0})
		require.NoError(t, err)
	}
	_, err := store.Lines.Create(ctx, model.Line{LineNumber: "L1", Status: model.LineStatusActive})
	require.NoError(t, err)
	_, err = store.Events.Create(ctx, model.Event{Title: "e", EventDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	d, err := service.NewDashboardService(store, discard).Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{Posts: 7, Lines: 1}, d.Stats)
	assert.Len(t, d.LatestPosts, service.DashboardLatest)
	assert.Len(t, d.LatestEvents, 1)
}

func TestNewRecentFeed(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	post, err := store.Posts.Create(ctx, model.Post{Title: "Crónica", Content: "c", Author: "a", IsPublished: true})
	require.NoError(t, err)
	_, err = store.Posts.Create(ctx, model.Post{Title: "Borrador", Content: "c", Author: "a", IsPublished: false})
	require.NoError(t, err)
	line, err := store.Lines.Create(ctx, model.Line{LineNumber: "R2", Status: model.LineStatusActive})
	require.NoError(t, err)
	_, err = store.Cities.Create(ctx, model.City{Name: "A Coruña", Slug: "a-coruna", Country: model.DefaultCountry})
	require.NoError(t, err)
	post.Title = "Crónica editada"
	_, err = store.Posts.Update(ctx, post)
	require.NoError(t, err)

	got := service.NewRecentFeed(store, discard).Build(ctx, 5)
	require.Len(t, got, 3)
	assert.Equal(t, model.RecentEntry{Type: model.EntityPost, Title: "Crónica editada", URL: "/post/1", LastModified: got[0].LastModified}, got[0])
	assert.Equal(t, "/cities/a-coruna", got[1].URL)
	assert.Equal(t, "Línea R2", got[2].Title)
	assert.Equal(t, "/lines/"+itoa(line.ID), got[2].URL)
}
