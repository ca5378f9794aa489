package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/service"
	"github.com/maxviazov/railway-blog-service/internal/view"
)

func field(name, label, typ, value string) view.Field {
	return view.Field{Name: name, Label: label, Type: typ, Value: value}
}

func required(f view.Field) view.Field {
	f.Required = true
	return f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func idValue(id *int64) string {
	if id == nil || *id <= 0 {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func published(p *bool) bool { return p == nil || *p }

func itemURL(prefix string, id int64) string { return prefix + "/" + strconv.FormatInt(id, 10) }

// checkbox reads an HTML checkbox; an unchecked box is absent from the form.
func checkbox(c *gin.Context, name string) *bool {
	v := c.PostForm(name) == "true"
	return &v
}

func (h *Handler) cityOptions(ctx context.Context, current *int64) ([]view.Option, error) {
	res, err := h.svc.Cities.List(ctx, repository.CityFilter{}, allRows)
	if err != nil {
		return nil, err
	}
	out := []view.Option{{Value: "", Label: "—", Selected: idValue(current) == ""}}
	for _, city := range res.Items {
		out = append(out, view.Option{
			Value:    strconv.FormatInt(city.ID, 10),
			Label:    city.Name,
			Selected: current != nil && *current == city.ID,
		})
	}
	return out, nil
}

func (h *Handler) categoryOptions(ctx context.Context, current *int64) ([]view.Option, error) {
	res, err := h.svc.Categories.List(ctx, allRows)
	if err != nil {
		return nil, err
	}
	out := []view.Option{{Value: "", Label: "—", Selected: idValue(current) == ""}}
	for _, cat := range res.Items {
		out = append(out, view.Option{
			Value:    strconv.FormatInt(cat.ID, 10),
			Label:    cat.Name,
			Selected: current != nil && *current == cat.ID,
		})
	}
	return out, nil
}

func selectField(name, label string, opts []view.Option) view.Field {
	f := field(name, label, "select", "")
	f.Options = opts
	return f
}

func checkField(name, label string, checked bool) view.Field {
	f := field(name, label, "checkbox", "")
	f.Checked = checked
	return f
}

func (h *Handler) postResource() *resource[model.Post, service.PostInput] {
	return &resource[model.Post, service.PostInput]{
		h:      h,
		kind:   view.Kind{Path: "posts", Heading: "Entradas"},
		single: "entrada",
		svc:    h.svc.Posts,
		list: func(ctx context.Context, p repository.Page) (repository.PageResult[model.Post], error) {
			return h.svc.Posts.List(ctx, false, p)
		},
		row: func(p model.Post) view.Row {
			detail := "publicada"
			if !p.IsPublished {
				detail = "borrador"
			}
			return view.Row{ID: p.ID, Label: p.Title, Detail: detail + " · " + view.FormatDate(p.LastModified()), PublicURL: itemURL("/post", p.ID)}
		},
		blank: func() service.PostInput { return service.PostInput{} },
		input: func(p model.Post) service.PostInput {
			return service.PostInput{Title: p.Title, Content: p.Content, Author: p.Author, IsPublished: &p.IsPublished, CategoryID: p.CategoryID}
		},
		bind: func(c *gin.Context, in *service.PostInput) error {
			in.IsPublished = checkbox(c, "is_published")
			return nil
		},
		fields: func(ctx context.Context, in service.PostInput) ([]view.Field, error) {
			cats, err := h.categoryOptions(ctx, in.CategoryID)
			if err != nil {
				return nil, err
			}
			return []view.Field{
				required(field("title", "Título", "text", in.Title)),
				required(field("author", "Autor", "text", in.Author)),
				selectField("category_id", "Categoría", cats),
				required(field("content", "Contenido (HTML)", "textarea", in.Content)),
				checkField("is_published", "Publicada", published(in.IsPublished)),
			}, nil
		},
		saved: func(p model.Post) string { return itemURL("/post", p.ID) },
	}
}

func (h *Handler) pageResource() *resource[model.Page, service.PageInput] {
	return &resource[model.Page, service.PageInput]{
		h:      h,
		kind:   view.Kind{Path: "pages", Heading: "Páginas"},
		single: "página",
		svc:    h.svc.Pages,
		list: func(ctx context.Context, p repository.Page) (repository.PageResult[model.Page], error) {
			return h.svc.Pages.List(ctx, false, p)
		},
		row: func(p model.Page) view.Row {
			return view.Row{ID: p.ID, Label: p.Title, Detail: "/pages/" + p.Slug, PublicURL: "/pages/" + p.Slug}
		},
		blank: func() service.PageInput { return service.PageInput{} },
		input: func(p model.Page) service.PageInput {
			return service.PageInput{Title: p.Title, Slug: p.Slug, Content: p.Content, IsPublished: &p.IsPublished}
		},
		bind: func(c *gin.Context, in *service.PageInput) error {
			in.IsPublished = checkbox(c, "is_published")
			return nil
		},
		fields: func(_ context.Context, in service.PageInput) ([]view.Field, error) {
			slug := field("slug", "Slug", "text", in.Slug)
			slug.Help = "Vacío: se genera a partir del título."
			return []view.Field{
				required(field("title", "Título", "text", in.Title)),
				slug,
				field("content", "Contenido (HTML)", "textarea", in.Content),
				checkField("is_published", "Publicada", published(in.IsPublished)),
			}, nil
		},
		saved: func(model.Page) string { return AdminPrefix + "/pages" },
	}
}

func (h *Handler) lineResource() *resource[model.Line, service.LineInput] {
	return &resource[model.Line, service.LineInput]{
		h:      h,
		kind:   view.Kind{Path: "lines", Heading: "Líneas"},
		single: "línea",
		svc:    h.svc.Lines,
		list: func(ctx context.Context, p repository.Page) (repository.PageResult[model.Line], error) {
			return h.svc.Lines.List(ctx, repository.LineFilter{}, p)
		},
		row: func(l model.Line) view.Row {
			return view.Row{ID: l.ID, Label: l.LineNumber, Detail: l.Status, PublicURL: itemURL("/lines", l.ID)}
		},
		blank: func() service.LineInput { return service.LineInput{Status: model.LineStatusActive} },
		input: func(l model.Line) service.LineInput {
			return service.LineInput{
				LineNumber: l.LineNumber, Description: l.Description, Status: l.Status,
				GaugeType: l.GaugeType, CitiesServed: l.CitiesServed, CategoryID: l.CategoryID,
			}
		},
		fields: func(ctx context.Context, in service.LineInput) ([]view.Field, error) {
			cats, err := h.categoryOptions(ctx, in.CategoryID)
			if err != nil {
				return nil, err
			}
			cities := field("cities_served", "Ciudades", "text", strings.Join(in.CitiesServed, ", "))
			cities.Help = "Separadas por comas."
			return []view.Field{
				required(field("line_number", "Número", "text", in.LineNumber)),
				selectField("status", "Estado", view.Choices(service.NormalizeLineStatus(in.Status), "", lineStatuses...)),
				selectField("gauge_type", "Ancho de vía", view.Choices(service.NormalizeGauge(deref(in.GaugeType)), "—", gaugeTypes...)),
				cities,
				selectField("category_id", "Categoría", cats),
				field("description", "Descripción (HTML)", "textarea", in.Description),
			}, nil
		},
		saved: func(l model.Line) string { return itemURL("/lines", l.ID) },
	}
}

func (h *Handler) stationResource() *resource[model.Station, service.StationInput] {
	return &resource[model.Station, service.StationInput]{
		h:      h,
		kind:   view.Kind{Path: "stations", Heading: "Estaciones"},
		single: "estación",
		svc:    h.svc.Stations,
		list: func(ctx context.Context, p repository.Page) (repository.PageResult[model.Station], error) {
			return h.svc.Stations.List(ctx, repository.StationFilter{}, p)
		},
		row: func(s model.Station) view.Row {
			return view.Row{ID: s.ID, Label: s.Name, Detail: s.StationCode, PublicURL: itemURL("/stations", s.ID)}
		},
		blank: func() service.StationInput { return service.StationInput{} },
		input: func(s model.Station) service.StationInput {
			return service.StationInput{
				StationCode: s.StationCode, Name: s.Name, Address: s.Address, Services: s.Services,
				Accessibility: s.Accessibility, StationType: s.StationType, Province: s.Province, CityID: s.CityID,
			}
		},
		fields: func(ctx context.Context, in service.StationInput) ([]view.Field, error) {
			cities, err := h.cityOptions(ctx, in.CityID)
			if err != nil {
				return nil, err
			}
			services := field("services", "Servicios", "text", strings.Join(in.Services, ", "))
			services.Help = "Separados por comas."
			access := field("accessibility", "Accesibilidad", "text", strings.Join(in.Accessibility, ", "))
			access.Help = "Separadas por comas."
			return []view.Field{
				required(field("station_code", "Código", "text", in.StationCode)),
				required(field("name", "Nombre", "text", in.Name)),
				field("address", "Dirección", "text", in.Address),
				selectField("station_type", "Tipo", view.Choices(deref(in.StationType), "—", stationTypes...)),
				selectField("city_id", "Ciudad", cities),
				field("province", "Provincia", "text", deref(in.Province)),
				services,
				access,
			}, nil
		},
		saved: func(s model.Station) string { return itemURL("/stations", s.ID) },
	}
}

func (h *Handler) projectResource() *resource[model.Project, service.ProjectInput] {
	return &resource[model.Project, service.ProjectInput]{
		h:      h,
		kind:   view.Kind{Path: "projects", Heading: "Proyectos"},
		single: "proyecto",
		svc:    h.svc.Projects,
		list: func(ctx context.Context, p repository.Page) (repository.PageResult[model.Project], error) {
			return h.svc.Projects.List(ctx, repository.ProjectFilter{}, p)
		},
		row: func(p model.Project) view.Row {
			return view.Row{ID: p.ID, Label: p.Title, Detail: p.Status, PublicURL: itemURL("/projects", p.ID)}
		},
		blank: func() service.ProjectInput { return service.ProjectInput{Status: model.ProjectStatusPlanning} },
		input: func(p model.Project) service.ProjectInput {
			return service.ProjectInput{
				Title: p.Title, Description: p.Description, ProjectType: p.ProjectType, Budget: p.Budget,
				Timeline: p.Timeline, Status: p.Status, CategoryID: p.CategoryID, CityID: p.CityID,
			}
		},
		fields: func(ctx context.Context, in service.ProjectInput) ([]view.Field, error) {
			cats, err := h.categoryOptions(ctx, in.CategoryID)
			if err != nil {
				return nil, err
			}
			cities, err := h.cityOptions(ctx, in.CityID)
			if err != nil {
				return nil, err
			}
			budget := ""
			if in.Budget != nil {
				budget = strconv.FormatFloat(*in.Budget, 'f', -1, 64)
			}
			return []view.Field{
				required(field("title", "Título", "text", in.Title)),
				field("project_type", "Tipo", "text", in.ProjectType),
				selectField("status", "Estado", view.Choices(service.NormalizeProjectStatus(in.Status), "", projectStates...)),
				field("budget", "Presupuesto (€)", "number", budget),
				field("timeline", "Plazos", "text", deref(in.Timeline)),
				selectField("category_id", "Categoría", cats),
				selectField("city_id", "Ciudad", cities),
				field("description", "Descripción (HTML)", "textarea", in.Description),
			}, nil
		},
		saved: func(p model.Project) string { return itemURL("/projects", p.ID) },
	}
}

func (h *Handler) eventResource() *resource[model.Event, service.EventInput] {
	return &resource[model.Event, service.EventInput]{
		h:      h,
		kind:   view.Kind{Path: "events", Heading: "Eventos"},
		single: "evento",
		svc:    h.svc.Events,
		list:   h.svc.Events.List,
		row: func(e model.Event) view.Row {
			return view.Row{ID: e.ID, Label: e.Title, Detail: view.FormatDate(e.EventDate) + " " + e.Location, PublicURL: "/events"}
		},
		blank: func() service.EventInput { return service.EventInput{} },
		input: func(e model.Event) service.EventInput {
			return service.EventInput{
				Title: e.Title, Description: e.Description, EventDate: e.EventDate.Format(time.DateOnly),
				EventTime: e.EventTime, Location: e.Location, EventType: e.EventType, CityID: e.CityID,
			}
		},
		fields: func(ctx context.Context, in service.EventInput) ([]view.Field, error) {
			cities, err := h.cityOptions(ctx, in.CityID)
			if err != nil {
				return nil, err
			}
			return []view.Field{
				required(field("title", "Título", "text", in.Title)),
				required(field("event_date", "Fecha", "date", in.EventDate)),
				field("event_time", "Hora", "time", deref(in.EventTime)),
				field("location", "Lugar", "text", in.Location),
				field("event_type", "Tipo", "text", in.EventType),
				selectField("city_id", "Ciudad", cities),
				field("description", "Descripción (HTML)", "textarea", in.Description),
			}, nil
		},
		saved:   func(model.Event) string { return "/events" },
		deleted: "/events",
	}
}

func (h *Handler) cityResource() *resource[model.City, service.CityInput] {
	return &resource[model.City, service.CityInput]{
		h:      h,
		kind:   view.Kind{Path: "cities", Heading: "Ciudades"},
		single: "ciudad",
		svc:    h.svc.Cities,
		list: func(ctx context.Context, p repository.Page) (repository.PageResult[model.City], error) {
			return h.svc.Cities.List(ctx, repository.CityFilter{}, p)
		},
		row: func(c model.City) view.Row {
			return view.Row{ID: c.ID, Label: c.Name, Detail: c.Region, PublicURL: "/cities/" + c.Slug}
		},
		blank: func() service.CityInput { return service.CityInput{Country: model.DefaultCountry} },
		input: func(c model.City) service.CityInput {
			return service.CityInput{Name: c.Name, Slug: c.Slug, Region: c.Region, Country: c.Country}
		},
		fields: func(_ context.Context, in service.CityInput) ([]view.Field, error) {
			return []view.Field{
				required(field("name", "Nombre", "text", in.Name)),
				field("slug", "Slug", "text", in.Slug),
				field("region", "Comunidad", "text", in.Region),
				field("country", "País", "text", in.Country),
			}, nil
		},
		saved: func(c model.City) string { return "/cities/" + c.Slug },
	}
}

func (h *Handler) categoryResource() *resource[model.Category, service.CategoryInput] {
	return &resource[model.Category, service.CategoryInput]{
		h:      h,
		kind:   view.Kind{Path: "categories", Heading: "Categorías"},
		single: "categoría",
		svc:    h.svc.Categories,
		list:   h.svc.Categories.List,
		row: func(c model.Category) view.Row {
			return view.Row{ID: c.ID, Label: c.Name, Detail: c.Slug, PublicURL: itemURL("/categories", c.ID)}
		},
		blank: func() service.CategoryInput { return service.CategoryInput{} },
		input: func(c model.Category) service.CategoryInput {
			return service.CategoryInput{Name: c.Name, Slug: c.Slug, Description: c.Description, ParentID: c.ParentID}
		},
		fields: func(ctx context.Context, in service.CategoryInput) ([]view.Field, error) {
			parents, err := h.categoryOptions(ctx, in.ParentID)
			if err != nil {
				return nil, err
			}
			return []view.Field{
				required(field("name", "Nombre", "text", in.Name)),
				field("slug", "Slug", "text", in.Slug),
				selectField("parent_id", "Categoría superior", parents),
				field("description", "Descripción", "textarea", deref(in.Description)),
			}, nil
		},
		saved: func(c model.Category) string { return itemURL("/categories", c.ID) },
	}
}
