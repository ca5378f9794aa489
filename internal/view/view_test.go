package view_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/config"
	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/pagination"
	"github.com/maxviazov/railway-blog-service/internal/view"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "", view.StripHTML(""))
	assert.Equal(t, "Hola mundo ferroviario", view.StripHTML("<p>Hola <b>mundo</b>\n ferroviario</p>"))

	long := "<div>" + strings.Repeat("ñ", 200) + "</div>"
	got := view.StripHTML(long)
	assert.Equal(t, strings.Repeat("ñ", view.ExcerptLength)+"...", got)

	exact := strings.Repeat("a", view.ExcerptLength)
	assert.Equal(t, exact, view.StripHTML(exact))
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/posts/noticias?page=2", view.PageURL("/posts/noticias", 2))
	assert.Equal(t, "/search?page=3&q=alta+velocidad", view.PageURL("/search?q=alta+velocidad&page=1", 3))
}

func TestFormatDateAndMoney(t *testing.T) {
	assert.Equal(t, "", view.FormatDate(time.Time{}))
	assert.Equal(t, "05/03/2025", view.FormatDate(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)))

	v := 1250000.5
	assert.Equal(t, "1.250.000,50 €", view.FormatMoney(&v))
	small := 999.0
	assert.Equal(t, "999,00 €", view.FormatMoney(&small))
	assert.Equal(t, "", view.FormatMoney(nil))
}

func TestNewPager(t *testing.T) {
	p, err := pagination.New(10, 20, 10)
	require.NoError(t, err)
	pager := view.NewPager(p, "/search?q=ave")

	assert.Equal(t, "/search?page=9&q=ave", pager.PrevURL)
	assert.Equal(t, "/search?page=11&q=ave", pager.NextURL)

	var numbers []int
	gaps := 0
	for _, l := range pager.Links {
		if l.Gap {
			gaps++
			continue
		}
		numbers = append(numbers, l.Number)
		assert.Equal(t, l.Number == 10, l.Current)
	}
	assert.Equal(t, []int{1, 2, 8, 9, 10, 11, 12, 19, 20}, numbers)
	assert.Equal(t, 2, gaps)
}

func TestChoices(t *testing.T) {
	opts := view.Choices("metrico", "—", "iberico", "metrico")
	require.Len(t, opts, 3)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[2].Selected)
}

func base(extra gin.H) gin.H {
	h := gin.H{
		"Site":    config.SiteConfig{Title: "Ferrocarril"},
		"Title":   "",
		"Query":   "",
		"Notice":  "",
		"IsAdmin": false,
		"Recent":  []model.RecentEntry{{Type: model.EntityLine, Title: "Línea C-4", URL: "/lines/1"}},
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func render(t *testing.T, r *view.Renderer, name string, data gin.H) string {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, data).Render(w), name)
	return w.Body.String()
}

func TestRenderer_Pages(t *testing.T) {
	r, err := view.New()
	require.NoError(t, err)

	p, err := pagination.New(1, 3, 10)
	require.NoError(t, err)
	pager := view.NewPager(p, "/posts/noticias")
	gauge := "iberico"

	body := render(t, r, "posts.html", base(gin.H{
		"Category": &model.Category{Name: "Noticias", Slug: "noticias"},
		"Posts":    []model.Post{{ID: 7, Title: "Nuevo Avlo", Content: "<p>Texto <em>largo</em></p>", Author: "Ana"}},
		"Pager":    pager,
	}))
	assert.Contains(t, body, `<a href="/post/7">Nuevo Avlo</a>`)
	assert.Contains(t, body, "Texto largo")
	assert.Contains(t, body, `href="/posts/noticias?page=2"`)
	assert.Contains(t, body, `href="/lines/1"`)

	body = render(t, r, "lines.html", base(gin.H{
		"Lines":        []model.Line{{ID: 1, LineNumber: "C-4", Status: "active", GaugeType: &gauge, CitiesServed: []string{"Madrid", "Parla"}}, {ID: 2, LineNumber: "R1", Status: "cerrada"}},
		"GaugeTypes":   []string{"iberico", "metrico"},
		"Statuses":     []string{"active", "cerrada"},
		"FilterType":   "iberico",
		"FilterStatus": "",
	}))
	assert.Contains(t, body, "Madrid, Parla")
	assert.Contains(t, body, `<option value="iberico" selected>`)
	assert.NotContains(t, body, "nil")

	body = render(t, r, "error.html", base(gin.H{"Status": 404, "Message": "No encontrado", "FieldErrors": nil}))
	assert.Contains(t, body, "No encontrado")

	body = render(t, r, "admin/form.html", base(gin.H{
		"Heading": "Nueva línea", "Action": "/admin/lines", "Cancel": "/admin/lines", "FieldErrors": nil,
		"Fields": []view.Field{
			{Name: "line_number", Label: "Número", Type: "text", Value: "C-5", Required: true},
			{Name: "gauge_type", Label: "Ancho", Type: "select", Options: view.Choices("", "—", "iberico")},
			{Name: "is_published", Label: "Publicado", Type: "checkbox", Checked: true},
		},
	}))
	assert.Contains(t, body, `value="C-5"`)
	assert.Contains(t, body, `checked`)
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := view.New()
	require.NoError(t, err)
	assert.False(t, r.Has("nope.html"))
	assert.True(t, r.Has("admin/dashboard.html"))
	assert.Error(t, r.Instance("nope.html", nil).Render(httptest.NewRecorder()))
}

func TestStatic(t *testing.T) {
	f, err := view.Static().Open("site.css")
	require.NoError(t, err)
	_ = f.Close()
}
