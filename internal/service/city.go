package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/slug"
)

type cityService struct {
	crud[model.City]
	cities   repository.CityRepository
	lines    repository.LineRepository
	stations repository.StationRepository
	projects repository.ProjectRepository
	log      zerolog.Logger
}

func NewCityService(store *repository.Store, logger zerolog.Logger) CityService {
	l := childLogger(logger, "city")
	return &cityService{
		crud:     crud[model.City]{store: store.Cities, log: l},
		cities:   store.Cities,
		lines:    store.Lines,
		stations: store.Stations,
		projects: store.Projects,
		log:      l,
	}
}

func (in *CityInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Region = strings.TrimSpace(in.Region)
	in.Country = strings.TrimSpace(in.Country)
	if in.Country == "" {
		in.Country = model.DefaultCountry
	}
	in.Slug = slug.Make(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
}

func (s *cityService) Create(ctx context.Context, in CityInput) (model.City, error) {
	in.normalize()
	if err := validateInput(&in); err != nil {
		return model.City{}, err
	}
	out, err := s.cities.Create(ctx, model.City{Name: in.Name, Slug: in.Slug, Region: in.Region, Country: in.Country})
	if err != nil {
		s.log.Error().Err(err).Str("slug", in.Slug).Msg("create city failed")
		return model.City{}, err
	}
	s.log.Info().Int64("city_id", out.ID).Str("slug", out.Slug).Msg("city created")
	return out, nil
}

func (s *cityService) GetBySlug(ctx context.Context, citySlug string) (model.City, error) {
	return s.cities.GetBySlug(ctx, citySlug)
}

func (s *cityService) Update(ctx context.Context, id int64, in CityInput) (model.City, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return model.City{}, err
	}
	in.normalize()
	if err := validateInput(&in); err != nil {
		return model.City{}, err
	}
	current.Name, current.Slug, current.Region, current.Country = in.Name, in.Slug, in.Region, in.Country
	out, err := s.cities.Update(ctx, current)
	if err != nil {
		s.log.Error().Err(err).Int64("city_id", id).Msg("update city failed")
		return model.City{}, err
	}
	return out, nil
}

func (s *cityService) List(ctx context.Context, f repository.CityFilter, page repository.Page) (repository.PageResult[model.City], error) {
	f.Name = strings.TrimSpace(f.Name)
	return s.cities.List(ctx, f, normalizePage(page))
}

// Related loads lines serving the city by name plus the stations and projects linked by id.
func (s *cityService) Related(ctx context.Context, city model.City) (model.CityRelated, error) {
	out := model.CityRelated{City: city}
	all := repository.Page{Limit: repository.MaxPageLimit}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.lines.List(gctx, repository.LineFilter{City: city.Name}, all)
		out.Lines = res.Items
		return err
	})
	g.Go(func() error {
		res, err := s.stations.List(gctx, repository.StationFilter{CityID: &city.ID}, all)
		out.Stations = res.Items
		return err
	})
	g.Go(func() error {
		res, err := s.projects.List(gctx, repository.ProjectFilter{CityID: &city.ID}, all)
		out.Projects = res.Items
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Int64("city_id", city.ID).Msg("load city content failed")
		return model.CityRelated{}, err
	}
	return out, nil
}
