package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

type eventService struct {
	crud[model.Event]
	events repository.EventRepository
	cities repository.CityRepository
	log    zerolog.Logger
}

func NewEventService(events repository.EventRepository, cities repository.CityRepository, logger zerolog.Logger) EventService {
	l := childLogger(logger, "event")
	return &eventService{crud: crud[model.Event]{store: events, log: l}, events: events, cities: cities, log: l}
}

func (s *eventService) build(ctx context.Context, in EventInput) (model.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.EventTime = optionalString(in.EventTime)
	in.CityID = optionalID(in.CityID)

	missing, err := exists(ctx, "city_id", in.CityID, s.cities.GetByID)
	if err != nil {
		return model.Event{}, err
	}
	if err := validateInput(&in, missing...); err != nil {
		return model.Event{}, err
	}
	// layout already checked by the datetime tag
	date, _ := time.Parse(time.DateOnly, in.EventDate)
	return model.Event{
		Title: in.Title, Description: in.Description, EventDate: date, EventTime: in.EventTime,
		Location: strings.TrimSpace(in.Location), EventType: strings.TrimSpace(in.EventType), CityID: in.CityID,
	}, nil
}

func (s *eventService) Create(ctx context.Context, in EventInput) (model.Event, error) {
	e, err := s.build(ctx, in)
	if err != nil {
		return model.Event{}, err
	}
	out, err := s.events.Create(ctx, e)
	if err != nil {
		s.log.Error().Err(err).Str("title", e.Title).Msg("create event failed")
		return model.Event{}, err
	}
	s.log.Info().Int64("event_id", out.ID).Msg("event created")
	return out, nil
}

func (s *eventService) Update(ctx context.Context, id int64, in EventInput) (model.Event, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return model.Event{}, err
	}
	e, err := s.build(ctx, in)
	if err != nil {
		return model.Event{}, err
	}
	e.ID = id
	out, err := s.events.Update(ctx, e)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", id).Msg("update event failed")
		return model.Event{}, err
	}
	return out, nil
}

func (s *eventService) List(ctx context.Context, page repository.Page) (repository.PageResult[model.Event], error) {
	return s.events.List(ctx, normalizePage(page))
}
