// Package handler wires the gin engine: middleware, public HTML pages, the
// admin area, the JSON API, the RSS feed and operational endpoints.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/auth"
	"github.com/maxviazov/railway-blog-service/internal/config"
	"github.com/maxviazov/railway-blog-service/internal/metrics"
	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/service"
	"github.com/maxviazov/railway-blog-service/internal/view"
)

// RecentFeed builds the "recent activity" sidebar.
type RecentFeed interface {
	Build(ctx context.Context, limit int) []model.RecentEntry
}

// Services bundles the use cases the HTTP layer calls.
type Services struct {
	Posts      service.PostService
	Pages      service.PageService
	Lines      service.LineService
	Stations   service.StationService
	Projects   service.ProjectService
	Events     service.EventService
	Cities     service.CityService
	Categories service.CategoryService
	Dashboard  service.DashboardService
}

// NewServices builds every service over one store.
func NewServices(store *repository.Store, logger zerolog.Logger) Services {
	return Services{
		Posts:      service.NewPostService(store.Posts, store.Categories, logger),
		Pages:      service.NewPageService(store.Pages, logger),
		Lines:      service.NewLineService(store.Lines, store.Categories, logger),
		Stations:   service.NewStationService(store.Stations, store.Cities, logger),
		Projects:   service.NewProjectService(store.Projects, store.Categories, store.Cities, logger),
		Events:     service.NewEventService(store.Events, store.Cities, logger),
		Cities:     service.NewCityService(store, logger),
		Categories: service.NewCategoryService(store.Categories, logger),
		Dashboard:  service.NewDashboardService(store, logger),
	}
}

// Deps is everything New needs.
type Deps struct {
	Services Services
	Recent   RecentFeed
	Auth     *auth.Manager
	Config   *config.Config
	Pinger   repository.Pinger
	Metrics  *metrics.Metrics
	Views    *view.Renderer
	Logger   zerolog.Logger
}

// Handler holds the dependencies shared by all routes.
type Handler struct {
	svc     Services
	recent  RecentFeed
	auth    *auth.Manager
	authCfg config.AuthConfig
	site    config.SiteConfig
	baseURL string
	driver  string
	pinger  repository.Pinger
	metrics *metrics.Metrics
	log     zerolog.Logger
	kinds   []view.Kind
}

// New builds the engine with the full middleware chain and every route.
func New(d Deps) *gin.Engine {
	h := &Handler{
		svc:     d.Services,
		recent:  d.Recent,
		auth:    d.Auth,
		authCfg: d.Config.Auth,
		site:    d.Config.Site,
		baseURL: d.Config.App.BaseURL,
		driver:  d.Config.Database.Driver,
		pinger:  d.Pinger,
		metrics: d.Metrics,
		log:     d.Logger.With().Str("module", "http").Logger(),
	}

	r := gin.New()
	r.HTMLRender = d.Views
	r.Use(
		requestID(),
		accessLog(h.log),
		h.recovery(),
		d.Metrics.Middleware(),
		secureHeaders(d.Config.App.SSL, d.Config.App.Env == "dev"),
		h.identify(),
	)
	r.NoRoute(func(c *gin.Context) { h.fail(c, repository.ErrNotFound) })
	h.register(r)
	return r
}

func (h *Handler) register(r *gin.Engine) {
	r.StaticFS(StaticPrefix, view.Static())
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	r.GET("/feed.xml", h.feed)

	r.GET("/live", h.liveness)
	r.GET("/ready", h.readiness)

	h.registerSession(r)
	h.registerPublic(r)
	h.registerAdmin(r)
	h.registerAPI(r.Group(APIPrefix))
}
