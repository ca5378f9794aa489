package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

type stationService struct {
	crud[model.Station]
	stations repository.StationRepository
	cities   repository.CityRepository
	log      zerolog.Logger
}

func NewStationService(stations repository.StationRepository, cities repository.CityRepository, logger zerolog.Logger) StationService {
	l := childLogger(logger, "station")
	return &stationService{crud: crud[model.Station]{store: stations, log: l}, stations: stations, cities: cities, log: l}
}

func (s *stationService) build(ctx context.Context, in StationInput) (model.Station, error) {
	in.StationCode = strings.ToUpper(strings.TrimSpace(in.StationCode))
	in.Name = strings.TrimSpace(in.Name)
	in.Services = splitList(in.Services)
	in.Accessibility = splitList(in.Accessibility)
	if t := optionalString(in.StationType); t != nil {
		v := strings.ToLower(*t)
		in.StationType = &v
	} else {
		in.StationType = nil
	}
	in.Province = optionalString(in.Province)
	in.CityID = optionalID(in.CityID)

	missing, err := exists(ctx, "city_id", in.CityID, s.cities.GetByID)
	if err != nil {
		return model.Station{}, err
	}
	if err := validateInput(&in, missing...); err != nil {
		return model.Station{}, err
	}
	return model.Station{
		StationCode: in.StationCode, Name: in.Name, Address: in.Address,
		Services: in.Services, Accessibility: in.Accessibility,
		StationType: in.StationType, Province: in.Province, CityID: in.CityID,
	}, nil
}

func (s *stationService) Create(ctx context.Context, in StationInput) (model.Station, error) {
	st, err := s.build(ctx, in)
	if err != nil {
		return model.Station{}, err
	}
	out, err := s.stations.Create(ctx, st)
	if err != nil {
		s.log.Error().Err(err).Str("station_code", st.StationCode).Msg("create station failed")
		return model.Station{}, err
	}
	s.log.Info().Int64("station_id", out.ID).Msg("station created")
	return out, nil
}

func (s *stationService) Update(ctx context.Context, id int64, in StationInput) (model.Station, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return model.Station{}, err
	}
	st, err := s.build(ctx, in)
	if err != nil {
		return model.Station{}, err
	}
	st.ID = id
	out, err := s.stations.Update(ctx, st)
	if err != nil {
		s.log.Error().Err(err).Int64("station_id", id).Msg("update station failed")
		return model.Station{}, err
	}
	return out, nil
}

func (s *stationService) List(ctx context.Context, f repository.StationFilter, page repository.Page) (repository.PageResult[model.Station], error) {
	f.StationType = strings.ToLower(strings.TrimSpace(f.StationType))
	f.Province = strings.TrimSpace(f.Province)
	f.CityID = optionalID(f.CityID)
	return s.stations.List(ctx, f, normalizePage(page))
}
