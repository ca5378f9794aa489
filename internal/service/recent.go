package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/recent"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

// NewRecentFeed wires the repository-backed sources in their fixed order:
// posts, lines, stations, projects, cities.
func NewRecentFeed(store *repository.Store, logger zerolog.Logger, opts ...recent.Option) *recent.Aggregator {
	sources := []recent.Source{
		recent.NewSource(model.EntityPost, store.Posts.Recent, func(p model.Post) model.RecentEntry {
			return model.RecentEntry{Title: p.Title, URL: fmt.Sprintf("/post/%d", p.ID), LastModified: p.LastModified()}
		}),
		recent.NewSource(model.EntityLine, store.Lines.Recent, func(l model.Line) model.RecentEntry {
			return model.RecentEntry{Title: "Línea " + l.LineNumber, URL: fmt.Sprintf("/lines/%d", l.ID), LastModified: l.LastModified()}
		}),
		recent.NewSource(model.EntityStation, store.Stations.Recent, func(s model.Station) model.RecentEntry {
			return model.RecentEntry{Title: s.Name, URL: fmt.Sprintf("/stations/%d", s.ID), LastModified: s.LastModified()}
		}),
		recent.NewSource(model.EntityProject, store.Projects.Recent, func(p model.Project) model.RecentEntry {
			return model.RecentEntry{Title: p.Title, URL: fmt.Sprintf("/projects/%d", p.ID), LastModified: p.LastModified()}
		}),
		recent.NewSource(model.EntityCity, store.Cities.Recent, func(c model.City) model.RecentEntry {
			return model.RecentEntry{Title: c.Name, URL: "/cities/" + c.Slug, LastModified: c.LastModified()}
		}),
	}
	return recent.New(logger, sources, opts...)
}
