package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

// DashboardLatest is how many posts and events the admin overview lists.
const DashboardLatest = 5

// Dashboard is the admin overview.
type Dashboard struct {
	Stats        model.DashboardStats `json:"stats"`
	LatestPosts  []model.Post         `json:"latest_posts"`
	LatestEvents []model.Event        `json:"latest_events"`
}

type dashboardService struct {
	store *repository.Store
	log   zerolog.Logger
}

func NewDashboardService(store *repository.Store, logger zerolog.Logger) DashboardService {
	return &dashboardService{store: store, log: childLogger(logger, "dashboard")}
}

// Overview runs the counts and the latest lists concurrently; the first failure cancels the rest.
func (s *dashboardService) Overview(ctx context.Context) (Dashboard, error) {
	start := time.Now()
	var d Dashboard
	latest := repository.Page{Limit: DashboardLatest}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Stats.Posts, err = s.store.Posts.Count(gctx, repository.PostFilter{})
		return err
	})
	g.Go(func() (err error) {
		d.Stats.Lines, err = s.store.Lines.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Stats.Stations, err = s.store.Stations.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Stats.Projects, err = s.store.Projects.Count(gctx)
		return err
	})
	g.Go(func() error {
		res, err := s.store.Posts.List(gctx, repository.PostFilter{}, latest)
		d.LatestPosts = res.Items
		return err
	})
	g.Go(func() error {
		res, err := s.store.Events.List(gctx, latest)
		d.LatestEvents = res.Items
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("dashboard failed")
		return Dashboard{}, err
	}
	s.log.Debug().Dur("took", time.Since(start)).Msg("dashboard built")
	return d, nil
}
