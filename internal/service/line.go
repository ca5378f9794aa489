package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

type lineService struct {
	crud[model.Line]
	lines      repository.LineRepository
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func NewLineService(lines repository.LineRepository, categories repository.CategoryRepository, logger zerolog.Logger) LineService {
	l := childLogger(logger, "line")
	return &lineService{crud: crud[model.Line]{store: lines, log: l}, lines: lines, categories: categories, log: l}
}

func (s *lineService) build(ctx context.Context, in LineInput) (model.Line, error) {
	in.LineNumber = strings.TrimSpace(in.LineNumber)
	in.Status = NormalizeLineStatus(in.Status)
	if in.Status == "" {
		in.Status = model.LineStatusActive
	}
	if g := optionalString(in.GaugeType); g != nil {
		v := NormalizeGauge(*g)
		in.GaugeType = &v
	} else {
		in.GaugeType = nil
	}
	in.CitiesServed = splitList(in.CitiesServed)
	in.CategoryID = optionalID(in.CategoryID)

	missing, err := exists(ctx, "category_id", in.CategoryID, s.categories.GetByID)
	if err != nil {
		return model.Line{}, err
	}
	if err := validateInput(&in, missing...); err != nil {
		return model.Line{}, err
	}
	return model.Line{
		LineNumber: in.LineNumber, Description: in.Description, Status: in.Status,
		GaugeType: in.GaugeType, CitiesServed: in.CitiesServed, CategoryID: in.CategoryID,
	}, nil
}

func (s *lineService) Create(ctx context.Context, in LineInput) (model.Line, error) {
	l, err := s.build(ctx, in)
	if err != nil {
		return model.Line{}, err
	}
	out, err := s.lines.Create(ctx, l)
	if err != nil {
		s.log.Error().Err(err).Str("line_number", l.LineNumber).Msg("create line failed")
		return model.Line{}, err
	}
	s.log.Info().Int64("line_id", out.ID).Msg("line created")
	return out, nil
}

func (s *lineService) Update(ctx context.Context, id int64, in LineInput) (model.Line, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return model.Line{}, err
	}
	l, err := s.build(ctx, in)
	if err != nil {
		return model.Line{}, err
	}
	l.ID = id
	out, err := s.lines.Update(ctx, l)
	if err != nil {
		s.log.Error().Err(err).Int64("line_id", id).Msg("update line failed")
		return model.Line{}, err
	}
	return out, nil
}

func (s *lineService) List(ctx context.Context, f repository.LineFilter, page repository.Page) (repository.PageResult[model.Line], error) {
	f.GaugeType = NormalizeGauge(f.GaugeType)
	f.Status = NormalizeLineStatus(f.Status)
	return s.lines.List(ctx, f, normalizePage(page))
}
