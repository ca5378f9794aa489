package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/pagination"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/service"
	"github.com/maxviazov/railway-blog-service/internal/view"
)

var (
	gaugeTypes    = []string{"iberico", "metrico", "internacional"}
	lineStatuses  = []string{model.LineStatusActive, model.LineStatusClosed}
	stationTypes  = []string{"principal", "regional", "local"}
	projectStates = []string{
		model.ProjectStatusPlanning,
		model.ProjectStatusConstruction,
		model.ProjectStatusCompleted,
		model.ProjectStatusSuspended,
	}
)

// allRows is the window used for unpaginated public listings.
var allRows = repository.Page{Limit: repository.MaxPageLimit}

type stationView struct {
	model.Station
	CityName string
}

type projectView struct {
	model.Project
	CategoryName string
	CityName     string
}

func (h *Handler) registerPublic(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/posts/:category", h.postsByCategory)
	r.GET("/post/:id", h.showPost)
	r.GET("/search", h.search)
	r.GET("/pages/:slug", h.showPage)

	r.GET("/lines", h.lines)
	r.GET("/lines/new", redirectTo(AdminPrefix+"/lines/new"))
	r.GET("/lines/:id", h.showLine)
	r.GET("/stations", h.stations)
	r.GET("/stations/new", redirectTo(AdminPrefix+"/stations/new"))
	r.GET("/stations/:id", h.showStation)
	r.GET("/projects", h.projects)
	r.GET("/projects/new", redirectTo(AdminPrefix+"/projects/new"))
	r.GET("/projects/:id", h.showProject)
	r.GET("/cities", h.cities)
	r.GET("/cities/:slug", h.showCity)
	r.GET("/categories", h.categories)
	r.GET("/categories/:id", h.showCategory)
	r.GET("/events", h.events)
}

func redirectTo(location string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Redirect(http.StatusSeeOther, location) }
}

func (h *Handler) home(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/posts/"+h.site.DefaultCategory)
}

func (h *Handler) pager(page, totalPages, perPage int, base string) view.Pager {
	p, err := pagination.New(page, totalPages, perPage)
	if err != nil {
		h.log.Warn().Err(err).Int("per_page", perPage).Str("path", base).Msg("pagination disabled")
		return view.Pager{}
	}
	return view.NewPager(p, base)
}

// postsByCategory lists published posts of one category. An unknown slug
// falls back to every published post; a numeric slug is never a category.
func (h *Handler) postsByCategory(c *gin.Context) {
	slug := c.Param("category")
	if _, err := strconv.ParseInt(slug, 10, 64); err == nil {
		h.fail(c, repository.ErrNotFound)
		return
	}
	page, err := queryPage(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	var (
		category   *model.Category
		categoryID *int64
		notice     string
	)
	cat, err := h.svc.Categories.GetBySlug(ctx, slug)
	switch {
	case err == nil:
		category, categoryID = &cat, &cat.ID
	case errors.Is(err, repository.ErrNotFound):
		notice = "Categoría no encontrada, se muestran todas las entradas."
	default:
		h.fail(c, err)
		return
	}

	listing, err := h.svc.Posts.ListPublished(ctx, categoryID, page, h.site.PostsPerPage)
	if err != nil {
		h.fail(c, err)
		return
	}
	title := "Entradas"
	if category != nil {
		title = category.Name
	}
	h.html(c, http.StatusOK, "posts.html", gin.H{
		"Title":    title,
		"Notice":   notice,
		"Category": category,
		"Posts":    listing.Items,
		"Pager":    h.pager(listing.Page, listing.TotalPages, listing.PerPage, c.Request.URL.Path),
	})
}

// showPost renders one post; drafts are visible to the admin only.
func (h *Handler) showPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.fail(c, repository.ErrNotFound)
		return
	}
	ctx := c.Request.Context()
	post, err := h.svc.Posts.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !post.IsPublished && !isAdmin(c) {
		h.fail(c, repository.ErrNotFound)
		return
	}
	var category *model.Category
	if post.CategoryID != nil {
		if cat, err := h.svc.Categories.Get(ctx, *post.CategoryID); err == nil {
			category = &cat
		}
	}
	h.html(c, http.StatusOK, "post.html", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"Category": category,
	})
}

func (h *Handler) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	page, err := queryPage(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	listing, err := h.svc.Posts.Search(c.Request.Context(), q, page, h.site.SearchPerPage)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "search.html", gin.H{
		"Title": "Buscar: " + q,
		"Query": q,
		"Total": listing.Total,
		"Posts": listing.Items,
		"Pager": h.pager(listing.Page, listing.TotalPages, listing.PerPage, c.Request.URL.RequestURI()),
	})
}

func (h *Handler) showPage(c *gin.Context) {
	p, err := h.svc.Pages.GetBySlug(c.Request.Context(), c.Param("slug"), isAdmin(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "page.html", gin.H{"Title": p.Title, "Page": p})
}

func (h *Handler) lines(c *gin.Context) {
	f := repository.LineFilter{
		GaugeType: c.Query("type"),
		Status:    c.Query("status"),
		City:      strings.TrimSpace(c.Query("city")),
	}
	res, err := h.svc.Lines.List(c.Request.Context(), f, allRows)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "lines.html", gin.H{
		"Title":        "Líneas",
		"Lines":        res.Items,
		"GaugeTypes":   gaugeTypes,
		"Statuses":     lineStatuses,
		"FilterType":   service.NormalizeGauge(f.GaugeType),
		"FilterStatus": service.NormalizeLineStatus(f.Status),
	})
}

func (h *Handler) showLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.fail(c, repository.ErrNotFound)
		return
	}
	line, err := h.svc.Lines.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "line.html", gin.H{"Title": "Línea " + line.LineNumber, "Line": line})
}

// cityNames indexes every city by id for labelling stations and projects.
func (h *Handler) cityNames(c *gin.Context) ([]model.City, map[int64]string, error) {
	res, err := h.svc.Cities.List(c.Request.Context(), repository.CityFilter{}, allRows)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[int64]string, len(res.Items))
	for _, city := range res.Items {
		names[city.ID] = city.Name
	}
	return res.Items, names, nil
}

func nameOf(names map[int64]string, id *int64) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

func (h *Handler) stations(c *gin.Context) {
	f := repository.StationFilter{
		StationType: c.Query("type"),
		Province:    c.Query("province"),
		CityID:      queryID(c, "city_id"),
	}
	res, err := h.svc.Stations.List(c.Request.Context(), f, allRows)
	if err != nil {
		h.fail(c, err)
		return
	}
	cities, names, err := h.cityNames(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]stationView, 0, len(res.Items))
	for _, s := range res.Items {
		items = append(items, stationView{Station: s, CityName: nameOf(names, s.CityID)})
	}
	var cityID int64
	if f.CityID != nil {
		cityID = *f.CityID
	}
	h.html(c, http.StatusOK, "stations.html", gin.H{
		"Title":          "Estaciones",
		"Stations":       items,
		"StationTypes":   stationTypes,
		"Cities":         cities,
		"FilterType":     strings.ToLower(strings.TrimSpace(f.StationType)),
		"FilterCityID":   cityID,
		"FilterProvince": strings.TrimSpace(f.Province),
	})
}

func (h *Handler) showStation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.fail(c, repository.ErrNotFound)
		return
	}
	ctx := c.Request.Context()
	st, err := h.svc.Stations.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	v := stationView{Station: st}
	if st.CityID != nil {
		if city, err := h.svc.Cities.Get(ctx, *st.CityID); err == nil {
			v.CityName = city.Name
		}
	}
	h.html(c, http.StatusOK, "station.html", gin.H{"Title": st.Name, "Station": v})
}

func (h *Handler) categoryNames(c *gin.Context) (map[int64]string, error) {
	res, err := h.svc.Categories.List(c.Request.Context(), allRows)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(res.Items))
	for _, cat := range res.Items {
		names[cat.ID] = cat.Name
	}
	return names, nil
}

func (h *Handler) projects(c *gin.Context) {
	f := repository.ProjectFilter{Status: c.Query("status"), CityID: queryID(c, "city_id")}
	res, err := h.svc.Projects.List(c.Request.Context(), f, allRows)
	if err != nil {
		h.fail(c, err)
		return
	}
	categories, err := h.categoryNames(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	_, cities, err := h.cityNames(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	items := make([]projectView, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, projectView{
			Project:      p,
			CategoryName: nameOf(categories, p.CategoryID),
			CityName:     nameOf(cities, p.CityID),
		})
	}
	h.html(c, http.StatusOK, "projects.html", gin.H{"Title": "Proyectos", "Projects": items})
}

func (h *Handler) showProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.fail(c, repository.ErrNotFound)
		return
	}
	ctx := c.Request.Context()
	p, err := h.svc.Projects.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	v := projectView{Project: p}
	if p.CategoryID != nil {
		if cat, err := h.svc.Categories.Get(ctx, *p.CategoryID); err == nil {
			v.CategoryName = cat.Name
		}
	}
	if p.CityID != nil {
		if city, err := h.svc.Cities.Get(ctx, *p.CityID); err == nil {
			v.CityName = city.Name
		}
	}
	h.html(c, http.StatusOK, "project.html", gin.H{"Title": p.Title, "Project": v})
}

// cities lists cities; when the name filter matches, the first match's
// related content is shown below the list.
func (h *Handler) cities(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	ctx := c.Request.Context()
	res, err := h.svc.Cities.List(ctx, repository.CityFilter{Name: name}, allRows)
	if err != nil {
		h.fail(c, err)
		return
	}
	var related *model.CityRelated
	if name != "" && len(res.Items) > 0 {
		rel, err := h.svc.Cities.Related(ctx, res.Items[0])
		if err != nil {
			h.fail(c, err)
			return
		}
		related = &rel
	}
	h.html(c, http.StatusOK, "cities.html", gin.H{
		"Title":      "Ciudades",
		"Cities":     res.Items,
		"FilterName": name,
		"Related":    related,
	})
}

// showCity accepts either a slug or a numeric id.
func (h *Handler) showCity(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("slug")
	var (
		city model.City
		err  error
	)
	if id, perr := strconv.ParseInt(key, 10, 64); perr == nil {
		city, err = h.svc.Cities.Get(ctx, id)
	} else {
		city, err = h.svc.Cities.GetBySlug(ctx, key)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	related, err := h.svc.Cities.Related(ctx, city)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "city.html", gin.H{"Title": city.Name, "City": city, "Related": related})
}

func (h *Handler) categories(c *gin.Context) {
	res, err := h.svc.Categories.List(c.Request.Context(), allRows)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "categories.html", gin.H{"Title": "Categorías", "Categories": res.Items})
}

func (h *Handler) showCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.fail(c, repository.ErrNotFound)
		return
	}
	ctx := c.Request.Context()
	cat, err := h.svc.Categories.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	var parent *model.Category
	if cat.ParentID != nil {
		if p, err := h.svc.Categories.Get(ctx, *cat.ParentID); err == nil {
			parent = &p
		}
	}
	listing, err := h.svc.Posts.ListPublished(ctx, &cat.ID, 1, h.site.PostsPerPage)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "category.html", gin.H{
		"Title":    cat.Name,
		"Category": cat,
		"Parent":   parent,
		"Posts":    listing.Items,
	})
}

func (h *Handler) events(c *gin.Context) {
	page, err := queryPage(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	page = max(page, 1)
	perPage := h.site.PostsPerPage
	res, err := h.svc.Events.List(c.Request.Context(), repository.Page{Limit: perPage, Offset: pagination.Offset(page, perPage)})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "events.html", gin.H{
		"Title":  "Eventos",
		"Events": res.Items,
		"Pager":  h.pager(page, pagination.TotalPages(res.Total, perPage), perPage, c.Request.URL.Path),
	})
}
