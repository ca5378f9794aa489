package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/railway-blog-service/internal/service"
	"github.com/maxviazov/railway-blog-service/pkg/response"
)

var errPanic = errors.New("internal panic")

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Los datos enviados no son válidos.",
	http.StatusUnauthorized:        "Necesitas iniciar sesión.",
	http.StatusNotFound:            "La página que buscas no existe.",
	http.StatusConflict:            "Ya existe un elemento con esos datos o está en uso.",
	http.StatusInternalServerError: "Se ha producido un error interno.",
}

// html renders a page inside the layout. Keys shared by the layout are
// always present so templates never index a missing key.
func (h *Handler) html(c *gin.Context, status int, name string, data gin.H) {
	page := gin.H{
		"Site":    h.site,
		"Title":   "",
		"Query":   "",
		"Notice":  "",
		"IsAdmin": isAdmin(c),
		"Recent":  h.recent.Build(c.Request.Context(), h.site.RecentLimit),
	}
	for k, v := range data {
		page[k] = v
	}
	c.HTML(status, name, page)
}

// fail reports err as JSON on API routes and as the error page elsewhere.
func (h *Handler) fail(c *gin.Context, err error) {
	status, payload := response.MapError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).
			Str("request_id", c.GetString(ctxRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	_ = c.Error(err)
	if strings.HasPrefix(c.Request.URL.Path, APIPrefix+"/") {
		c.AbortWithStatusJSON(status, payload)
		return
	}
	msg, ok := statusMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	h.html(c, status, "error.html", gin.H{
		"Title":       strconv.Itoa(status),
		"Status":      status,
		"Message":     msg,
		"FieldErrors": payload.FieldErrors,
	})
	c.Abort()
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// queryPage reads ?page=, defaulting to 1. Non-numeric values are rejected.
func queryPage(c *gin.Context) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.NewInvalidInputError("page", "must be an integer")
	}
	return n, nil
}

// queryID reads an optional positive id filter; anything else means "no filter".
func queryID(c *gin.Context, name string) *int64 {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
