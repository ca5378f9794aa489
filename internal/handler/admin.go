package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/railway-blog-service/internal/pagination"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/service"
	"github.com/maxviazov/railway-blog-service/internal/view"
)

// adminPerPage is the page size of admin listings.
const adminPerPage = 20

// editor is the write side shared by every content service.
type editor[T, In any] interface {
	Create(ctx context.Context, in In) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, id int64, in In) (T, error)
	Delete(ctx context.Context, id int64) error
}

// resource is one admin section: a paginated list and a create/edit form.
type resource[T, In any] struct {
	h      *Handler
	kind   view.Kind
	single string // heading noun for the form, e.g. "línea"
	svc    editor[T, In]
	list   func(ctx context.Context, page repository.Page) (repository.PageResult[T], error)
	row    func(T) view.Row
	blank  func() In
	input  func(T) In
	fields func(ctx context.Context, in In) ([]view.Field, error)
	saved  func(T) string // redirect after create or update
	// bind overrides plain form binding, e.g. for checkboxes.
	bind    func(c *gin.Context, in *In) error
	deleted string // redirect after delete; defaults to the admin list
}

func (res *resource[T, In]) base() string { return AdminPrefix + "/" + res.kind.Path }

func (res *resource[T, In]) register(g *gin.RouterGroup) {
	g.GET("/"+res.kind.Path, res.index)
	g.GET("/"+res.kind.Path+"/new", res.newForm)
	g.GET("/"+res.kind.Path+"/:id/edit", res.editForm)
	g.POST("/"+res.kind.Path, res.create)
	g.POST("/"+res.kind.Path+"/:id", res.update)
	g.POST("/"+res.kind.Path+"/:id/delete", res.remove)
}

func (res *resource[T, In]) index(c *gin.Context) {
	page, err := queryPage(c)
	if err != nil {
		res.h.fail(c, err)
		return
	}
	page = max(page, 1)
	out, err := res.list(c.Request.Context(), repository.Page{Limit: adminPerPage, Offset: pagination.Offset(page, adminPerPage)})
	if err != nil {
		res.h.fail(c, err)
		return
	}
	rows := make([]view.Row, 0, len(out.Items))
	for _, item := range out.Items {
		r := res.row(item)
		id := strconv.FormatInt(r.ID, 10)
		r.EditURL = res.base() + "/" + id + "/edit"
		r.DeleteURL = res.base() + "/" + id + "/delete"
		rows = append(rows, r)
	}
	res.h.html(c, http.StatusOK, "admin/list.html", gin.H{
		"Title":   res.kind.Heading,
		"Heading": res.kind.Heading,
		"NewURL":  res.base() + "/new",
		"Rows":    rows,
		"Pager":   res.h.pager(page, pagination.TotalPages(out.Total, adminPerPage), adminPerPage, res.base()),
	})
}

func (res *resource[T, In]) newForm(c *gin.Context) {
	res.form(c, http.StatusOK, "Nuevo: "+res.single, res.base(), res.blank(), nil)
}

func (res *resource[T, In]) editForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		res.h.fail(c, repository.ErrNotFound)
		return
	}
	item, err := res.svc.Get(c.Request.Context(), id)
	if err != nil {
		res.h.fail(c, err)
		return
	}
	res.form(c, http.StatusOK, "Editar: "+res.single, res.base()+"/"+strconv.FormatInt(id, 10), res.input(item), nil)
}

func (res *resource[T, In]) create(c *gin.Context) {
	in, ok := res.bindForm(c, res.base())
	if !ok {
		return
	}
	item, err := res.svc.Create(c.Request.Context(), in)
	if err != nil {
		res.rejected(c, "Nuevo: "+res.single, res.base(), in, err)
		return
	}
	c.Redirect(http.StatusSeeOther, res.saved(item))
}

func (res *resource[T, In]) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		res.h.fail(c, repository.ErrNotFound)
		return
	}
	action := res.base() + "/" + strconv.FormatInt(id, 10)
	in, ok := res.bindForm(c, action)
	if !ok {
		return
	}
	item, err := res.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		res.rejected(c, "Editar: "+res.single, action, in, err)
		return
	}
	c.Redirect(http.StatusSeeOther, res.saved(item))
}

func (res *resource[T, In]) remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		res.h.fail(c, repository.ErrNotFound)
		return
	}
	if err := res.svc.Delete(c.Request.Context(), id); err != nil {
		res.h.fail(c, err)
		return
	}
	target := res.deleted
	if target == "" {
		target = res.base()
	}
	c.Redirect(http.StatusSeeOther, target)
}

// bindForm decodes the posted form; a malformed value re-renders the form.
func (res *resource[T, In]) bindForm(c *gin.Context, action string) (In, bool) {
	var in In
	err := c.ShouldBind(&in)
	if err == nil && res.bind != nil {
		err = res.bind(c, &in)
	}
	if err != nil {
		res.h.log.Debug().Err(err).Str("kind", res.kind.Path).Msg("admin form binding failed")
		res.form(c, http.StatusBadRequest, "Revisar: "+res.single, action, in,
			[]service.FieldError{{Field: "form", Message: "contiene valores con formato incorrecto"}})
		return in, false
	}
	return in, true
}

// rejected re-renders the form for validation errors and fails otherwise.
func (res *resource[T, In]) rejected(c *gin.Context, heading, action string, in In, err error) {
	if !errors.Is(err, service.ErrInvalidInput) {
		res.h.fail(c, err)
		return
	}
	res.form(c, http.StatusBadRequest, heading, action, in, service.FieldErrors(err))
}

func (res *resource[T, In]) form(c *gin.Context, status int, heading, action string, in In, errs []service.FieldError) {
	fields, err := res.fields(c.Request.Context(), in)
	if err != nil {
		res.h.fail(c, err)
		return
	}
	for i := range fields {
		for _, fe := range errs {
			if fe.Field == fields[i].Name {
				fields[i].Error = fe.Message
			}
		}
	}
	res.h.html(c, status, "admin/form.html", gin.H{
		"Title":       heading,
		"Heading":     heading,
		"Action":      action,
		"Fields":      fields,
		"FieldErrors": errs,
		"Cancel":      res.base(),
	})
}

func (h *Handler) registerAdmin(r *gin.Engine) {
	posts := h.postResource()

	g := r.Group(AdminPrefix, requireAdmin(false))
	g.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, AdminPrefix+"/dashboard") })
	g.GET("/dashboard", h.dashboard)

	posts.register(g)
	h.addKind(posts.kind)
	for _, res := range []interface {
		register(*gin.RouterGroup)
		section() view.Kind
	}{
		h.pageResource(),
		h.lineResource(),
		h.stationResource(),
		h.projectResource(),
		h.eventResource(),
		h.cityResource(),
		h.categoryResource(),
	} {
		res.register(g)
		h.addKind(res.section())
	}

	legacy := r.Group("", requireAdmin(false))
	legacy.GET("/new", posts.newForm)
	legacy.GET("/edit/:id", posts.editForm)
	legacy.POST("/posts", posts.create)
	legacy.POST("/posts/:id", posts.update)
	legacy.POST("/posts/:id/delete", posts.remove)
}

func (res *resource[T, In]) section() view.Kind { return res.kind }

func (h *Handler) addKind(k view.Kind) { h.kinds = append(h.kinds, k) }

func (h *Handler) dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard.Overview(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":     "Panel",
		"Dashboard": d,
		"Kinds":     h.kinds,
	})
}
