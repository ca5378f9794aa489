// Package seed populates a database with the fixed categories, the Spanish
// cities list and an optional demo dataset. Every set is idempotent: rows that
// already exist are left alone.
package seed

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/service"
)

//go:embed fixtures/*.yaml
var fixtures embed.FS

// Set names accepted by Run.
const (
	SetCategories = "categories"
	SetCities     = "cities"
	SetSample     = "sample"
)

// Sets lists the valid set names in dependency order.
var Sets = []string{SetCategories, SetCities, SetSample}

// Result counts created rows per entity kind.
type Result map[string]int

type categoryFixture struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Parent      string `yaml:"parent"`
}

type cityFixture struct {
	Name    string `yaml:"name"`
	Slug    string `yaml:"slug"`
	Region  string `yaml:"region"`
	Country string `yaml:"country"`
}

type sampleFixture struct {
	Categories []categoryFixture `yaml:"categories"`
	Lines      []struct {
		LineNumber   string   `yaml:"line_number"`
		Description  string   `yaml:"description"`
		Status       string   `yaml:"status"`
		GaugeType    string   `yaml:"gauge_type"`
		CitiesServed []string `yaml:"cities_served"`
		Category     string   `yaml:"category"`
	} `yaml:"lines"`
	Stations []struct {
		StationCode   string   `yaml:"station_code"`
		Name          string   `yaml:"name"`
		Address       string   `yaml:"address"`
		Services      []string `yaml:"services"`
		Accessibility []string `yaml:"accessibility"`
		StationType   string   `yaml:"station_type"`
		Province      string   `yaml:"province"`
		City          string   `yaml:"city"`
	} `yaml:"stations"`
	Projects []struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		ProjectType string   `yaml:"project_type"`
		Budget      *float64 `yaml:"budget"`
		Timeline    string   `yaml:"timeline"`
		Status      string   `yaml:"status"`
		Category    string   `yaml:"category"`
		City        string   `yaml:"city"`
	} `yaml:"projects"`
	Events []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		EventDate   string `yaml:"event_date"`
		EventTime   string `yaml:"event_time"`
		Location    string `yaml:"location"`
		EventType   string `yaml:"event_type"`
		City        string `yaml:"city"`
	} `yaml:"events"`
	Posts []struct {
		Title       string `yaml:"title"`
		Content     string `yaml:"content"`
		Author      string `yaml:"author"`
		IsPublished *bool  `yaml:"is_published"`
		Category    string `yaml:"category"`
	} `yaml:"posts"`
	Pages []struct {
		Title   string `yaml:"title"`
		Slug    string `yaml:"slug"`
		Content string `yaml:"content"`
	} `yaml:"pages"`
}

// Seeder writes fixtures through the service layer so they get the same
// normalization and validation as user input.
type Seeder struct {
	store      *repository.Store
	log        zerolog.Logger
	categories service.CategoryService
	cities     service.CityService
	lines      service.LineService
	stations   service.StationService
	projects   service.ProjectService
	events     service.EventService
	posts      service.PostService
	pages      service.PageService
}

func New(store *repository.Store, logger zerolog.Logger) *Seeder {
	return &Seeder{
		store:      store,
		log:        logger.With().Str("module", "seed").Logger(),
		categories: service.NewCategoryService(store.Categories, logger),
		cities:     service.NewCityService(store, logger),
		lines:      service.NewLineService(store.Lines, store.Categories, logger),
		stations:   service.NewStationService(store.Stations, store.Cities, logger),
		projects:   service.NewProjectService(store.Projects, store.Categories, store.Cities, logger),
		events:     service.NewEventService(store.Events, store.Cities, logger),
		posts:      service.NewPostService(store.Posts, store.Categories, logger),
		pages:      service.NewPageService(store.Pages, logger),
	}
}

// Run applies one named set inside a single transaction.
func (s *Seeder) Run(ctx context.Context, set string) (Result, error) {
	if !slices.Contains(Sets, set) {
		return nil, fmt.Errorf("unknown seed set %q (want one of %v)", set, Sets)
	}
	res := Result{}
	err := s.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		switch set {
		case SetCategories:
			return s.seedCategories(ctx, res)
		case SetCities:
			return s.seedCities(ctx, res)
		default:
			return s.seedSample(ctx, res)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", set, err)
	}
	s.log.Info().Str("set", set).Interface("created", res).Msg("seed applied")
	return res, nil
}

func load(name string, out any) error {
	b, err := fixtures.ReadFile("fixtures/" + name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context, res Result) error {
	var list []categoryFixture
	if err := load("categories.yaml", &list); err != nil {
		return err
	}
	return s.ensureCategories(ctx, list, res)
}

// ensureCategories creates categories whose slug is missing, parents first.
func (s *Seeder) ensureCategories(ctx context.Context, list []categoryFixture, res Result) error {
	for _, c := range list {
		if _, err := s.categories.GetBySlug(ctx, c.Slug); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		parent, err := s.categoryID(ctx, c.Parent)
		if err != nil {
			return err
		}
		in := service.CategoryInput{Name: c.Name, Slug: c.Slug, Description: &c.Description, ParentID: parent}
		if _, err := s.categories.Create(ctx, in); err != nil {
			return fmt.Errorf("category %s: %w", c.Slug, err)
		}
		res["categories"]++
	}
	return nil
}

func (s *Seeder) seedCities(ctx context.Context, res Result) error {
	n, err := s.store.Cities.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info().Int("existing", n).Msg("cities present, skipping")
		return nil
	}
	var list []cityFixture
	if err := load("cities.yaml", &list); err != nil {
		return err
	}
	for _, c := range list {
		if _, err := s.cities.Create(ctx, service.CityInput{Name: c.Name, Slug: c.Slug, Region: c.Region, Country: c.Country}); err != nil {
			return fmt.Errorf("city %s: %w", c.Slug, err)
		}
		res["cities"]++
	}
	return nil
}

// seedSample needs the base categories and cities, so it applies them first.
func (s *Seeder) seedSample(ctx context.Context, res Result) error {
	if err := s.seedCategories(ctx, res); err != nil {
		return err
	}
	if err := s.seedCities(ctx, res); err != nil {
		return err
	}
	var f sampleFixture
	if err := load("sample.yaml", &f); err != nil {
		return err
	}
	if err := s.ensureCategories(ctx, f.Categories, res); err != nil {
		return err
	}

	steps := []func(context.Context, *sampleFixture, Result) error{
		s.sampleLines, s.sampleStations, s.sampleProjects, s.sampleEvents, s.samplePosts, s.samplePages,
	}
	for _, step := range steps {
		if err := step(ctx, &f, res); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) sampleLines(ctx context.Context, f *sampleFixture, res Result) error {
	existing, err := s.store.Lines.List(ctx, repository.LineFilter{}, repository.Page{Limit: repository.MaxPageLimit})
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing.Items))
	for _, l := range existing.Items {
		have[l.LineNumber] = true
	}
	for _, l := range f.Lines {
		if have[l.LineNumber] {
			continue
		}
		cat, err := s.categoryID(ctx, l.Category)
		if err != nil {
			return err
		}
		in := service.LineInput{
			LineNumber: l.LineNumber, Description: l.Description, Status: l.Status,
			GaugeType: optional(l.GaugeType), CitiesServed: l.CitiesServed, CategoryID: cat,
		}
		if _, err := s.lines.Create(ctx, in); err != nil {
			return fmt.Errorf("line %s: %w", l.LineNumber, err)
		}
		res["lines"]++
	}
	return nil
}

func (s *Seeder) sampleStations(ctx context.Context, f *sampleFixture, res Result) error {
	existing, err := s.store.Stations.List(ctx, repository.StationFilter{}, repository.Page{Limit: repository.MaxPageLimit})
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing.Items))
	for _, st := range existing.Items {
		have[st.StationCode] = true
	}
	for _, st := range f.Stations {
		if have[st.StationCode] {
			continue
		}
		city, err := s.cityID(ctx, st.City)
		if err != nil {
			return err
		}
		in := service.StationInput{
			StationCode: st.StationCode, Name: st.Name, Address: st.Address,
			Services: st.Services, Accessibility: st.Accessibility,
			StationType: optional(st.StationType), Province: optional(st.Province), CityID: city,
		}
		if _, err := s.stations.Create(ctx, in); err != nil {
			return fmt.Errorf("station %s: %w", st.StationCode, err)
		}
		res["stations"]++
	}
	return nil
}

func (s *Seeder) sampleProjects(ctx context.Context, f *sampleFixture, res Result) error {
	if n, err := s.store.Projects.Count(ctx); err != nil || n > 0 {
		return err
	}
	for _, p := range f.Projects {
		cat, err := s.categoryID(ctx, p.Category)
		if err != nil {
			return err
		}
		city, err := s.cityID(ctx, p.City)
		if err != nil {
			return err
		}
		in := service.ProjectInput{
			Title: p.Title, Description: p.Description, ProjectType: p.ProjectType, Budget: p.Budget,
			Timeline: optional(p.Timeline), Status: p.Status, CategoryID: cat, CityID: city,
		}
		if _, err := s.projects.Create(ctx, in); err != nil {
			return fmt.Errorf("project %q: %w", p.Title, err)
		}
		res["projects"]++
	}
	return nil
}

func (s *Seeder) sampleEvents(ctx context.Context, f *sampleFixture, res Result) error {
	existing, err := s.store.Events.List(ctx, repository.Page{Limit: 1})
	if err != nil || existing.Total > 0 {
		return err
	}
	for _, e := range f.Events {
		city, err := s.cityID(ctx, e.City)
		if err != nil {
			return err
		}
		in := service.EventInput{
			Title: e.Title, Description: e.Description, EventDate: e.EventDate, EventTime: optional(e.EventTime),
			Location: e.Location, EventType: e.EventType, CityID: city,
		}
		if _, err := s.events.Create(ctx, in); err != nil {
			return fmt.Errorf("event %q: %w", e.Title, err)
		}
		res["events"]++
	}
	return nil
}

func (s *Seeder) samplePosts(ctx context.Context, f *sampleFixture, res Result) error {
	if n, err := s.store.Posts.Count(ctx, repository.PostFilter{}); err != nil || n > 0 {
		return err
	}
	for _, p := range f.Posts {
		cat, err := s.categoryID(ctx, p.Category)
		if err != nil {
			return err
		}
		in := service.PostInput{Title: p.Title, Content: p.Content, Author: p.Author, IsPublished: p.IsPublished, CategoryID: cat}
		if _, err := s.posts.Create(ctx, in); err != nil {
			return fmt.Errorf("post %q: %w", p.Title, err)
		}
		res["posts"]++
	}
	return nil
}

func (s *Seeder) samplePages(ctx context.Context, f *sampleFixture, res Result) error {
	for _, p := range f.Pages {
		if _, err := s.store.Pages.GetBySlug(ctx, p.Slug); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if _, err := s.pages.Create(ctx, service.PageInput{Title: p.Title, Slug: p.Slug, Content: p.Content}); err != nil {
			return fmt.Errorf("page %s: %w", p.Slug, err)
		}
		res["pages"]++
	}
	return nil
}

func (s *Seeder) categoryID(ctx context.Context, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", slug, err)
	}
	return &c.ID, nil
}

func (s *Seeder) cityID(ctx context.Context, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.cities.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("city %q: %w", slug, err)
	}
	return &c.ID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
