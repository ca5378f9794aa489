package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/auth"
	"github.com/maxviazov/railway-blog-service/internal/config"
	"github.com/maxviazov/railway-blog-service/internal/handler"
	"github.com/maxviazov/railway-blog-service/internal/metrics"
	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/repository/sqlite"
	"github.com/maxviazov/railway-blog-service/internal/seed"
	"github.com/maxviazov/railway-blog-service/internal/service"
	"github.com/maxviazov/railway-blog-service/internal/view"
)

const adminPassword = "tren-secreto"

type testEnv struct {
	r     *gin.Engine
	store *repository.Store
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvWith(t, zerolog.New(io.Discard), nil)
}

// newEnvWith lets a test capture logs and adjust the config before the engine is built.
func newEnvWith(t *testing.T, log zerolog.Logger, tune func(*config.Config)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "blog.db"), log)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db, log))
	store := sqlite.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })

	_, err = seed.New(store, log).Run(ctx, seed.SetSample)
	require.NoError(t, err)

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)
	cfg := &config.Config{
		App:      config.AppConfig{Name: "railway-blog-service", Env: "test", Port: 8080, BaseURL: "http://blog.test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite},
		Auth: config.AuthConfig{
			AdminPasswordHash: hash,
			SecretKey:         "0123456789abcdef-test",
			CookieName:        "auth_token",
			CookieTTLSeconds:  3600,
		},
		Site: config.SiteConfig{
			Title: "Ferrocarril", DefaultCategory: "noticias",
			PostsPerPage: 10, SearchPerPage: 5, RecentLimit: 5, FeedSize: 20,
		},
	}
	if tune != nil {
		tune(cfg)
	}
	views, err := view.New()
	require.NoError(t, err)

	r := handler.New(handler.Deps{
		Services: handler.NewServices(store, log),
		Recent:   service.NewRecentFeed(store, log),
		Auth:     auth.NewManager(cfg.Auth),
		Config:   cfg,
		Pinger:   store.Pinger,
		Metrics:  metrics.New(),
		Views:    views,
		Logger:   log,
	})
	return &testEnv{r: r, store: store}
}

func (e *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (e *testEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, cookies...)
}

func (e *testEnv) sendJSON(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, cookies...)
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := e.postForm("/login", url.Values{"password": {adminPassword}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func (e *testEnv) postByTitle(t *testing.T, title string) model.Post {
	t.Helper()
	res, err := e.store.Posts.List(context.Background(), repository.PostFilter{}, repository.Page{})
	require.NoError(t, err)
	for _, p := range res.Items {
		if p.Title == title {
			return p
		}
	}
	t.Fatalf("post %q not found", title)
	return model.Post{}
}

func idFromLocation(t *testing.T, loc, prefix string) int64 {
	t.Helper()
	require.True(t, strings.HasPrefix(loc, prefix), loc)
	id, err := strconv.ParseInt(strings.TrimPrefix(loc, prefix), 10, 64)
	require.NoError(t, err)
	return id
}

func TestHome_RedirectsToDefaultCategory(t *testing.T) {
	e := newEnv(t)
	w := e.get("/")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/noticias", w.Header().Get("Location"))
}

func TestPostsByCategory(t *testing.T) {
	e := newEnv(t)

	w := e.get("/posts/noticias")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Treinta años de alta velocidad en España")
	assert.NotContains(t, body, "Borrador sobre el Corredor Atlántico")
	assert.NotContains(t, body, "Por qué las vías españolas tienen otro ancho</a></h2>")
	assert.Contains(t, body, "Actividad reciente")

	w = e.get("/posts/inexistente")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Categoría no encontrada")
	assert.Contains(t, w.Body.String(), "Por qué las vías españolas tienen otro ancho")

	assert.Equal(t, http.StatusNotFound, e.get("/posts/42").Code)
	assert.Equal(t, http.StatusBadRequest, e.get("/posts/noticias?page=dos").Code)
}

func TestSearch(t *testing.T) {
	e := newEnv(t)

	w := e.get("/search?q=+")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = e.get("/search?q=ancho")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 resultado(s)")
	assert.Contains(t, w.Body.String(), "Por qué las vías españolas tienen otro ancho")
}

func TestShowPost_DraftVisibleToAdminOnly(t *testing.T) {
	e := newEnv(t)
	draft := e.postByTitle(t, "Borrador sobre el Corredor Atlántico")
	path := "/post/" + strconv.FormatInt(draft.ID, 10)

	assert.Equal(t, http.StatusNotFound, e.get(path).Code)

	w := e.get(path, e.login(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pendiente de revisión.")
	assert.Contains(t, w.Body.String(), "/edit/"+strconv.FormatInt(draft.ID, 10))
}

func TestLogin(t *testing.T) {
	e := newEnv(t)

	w := e.postForm("/login", url.Values{"password": {"otra"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Contraseña incorrecta.")

	w = e.postForm("/login", url.Values{"password": {adminPassword}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "auth_token=")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Lax")

	metricsBody := e.get("/metrics").Body.String()
	assert.Contains(t, metricsBody, `railway_blog_admin_logins_total{outcome="failure"} 1`)
	assert.Contains(t, metricsBody, `railway_blog_admin_logins_total{outcome="success"} 1`)
}

func TestLogout_ClearsCookie(t *testing.T) {
	e := newEnv(t)
	w := e.postForm("/logout", nil, e.login(t))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestProtectedRoutes(t *testing.T) {
	e := newEnv(t)

	for _, path := range []string{"/admin/dashboard", "/admin/lines", "/new", "/edit/1"} {
		w := e.get(path)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	w := e.sendJSON(http.MethodPost, "/api/posts", `{"title":"x"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized","message":"authentication required"}`, w.Body.String())

	forged := &http.Cookie{Name: "auth_token", Value: "9999999999.bm9wZQ"}
	assert.Equal(t, http.StatusSeeOther, e.get("/admin/dashboard", forged).Code)
}

func TestAdmin_Dashboard(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	w := e.get("/admin", cookie)
	assert.Equal(t, http.StatusFound, w.Code)

	w = e.get("/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Entradas</a>: 4")
	assert.Contains(t, body, "Líneas</a>: 6")
	assert.Contains(t, body, `href="/admin/categories"`)
}

func TestAdmin_LineLifecycle(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	w := e.get("/lines/new", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/lines/new", w.Header().Get("Location"))

	w = e.get("/admin/lines/new", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="line_number"`)

	w = e.postForm("/admin/lines", url.Values{"line_number": {""}, "status": {"active"}}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "has-error")

	w = e.postForm("/admin/lines", url.Values{
		"line_number":   {"C-9"},
		"status":        {"Activa"},
		"gauge_type":    {""},
		"cities_served": {"Madrid, Parla"},
		"category_id":   {""},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	id := idFromLocation(t, w.Header().Get("Location"), "/lines/")

	w = e.get("/lines/" + strconv.FormatInt(id, 10))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Madrid, Parla")

	w = e.get("/admin/lines/"+strconv.FormatInt(id, 10)+"/edit", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="C-9"`)

	w = e.postForm("/admin/lines/"+strconv.FormatInt(id, 10), url.Values{"line_number": {"C-4"}}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.postForm("/admin/lines/"+strconv.FormatInt(id, 10)+"/delete", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/lines", w.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, e.get("/lines/"+strconv.FormatInt(id, 10)).Code)
}

func TestAdmin_LegacyPostRoutes(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	w := e.get("/new", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="title"`)

	w = e.postForm("/posts", url.Values{
		"title": {"Nueva entrada"}, "author": {"Ana"}, "content": {"<p>Texto</p>"}, "category_id": {""},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	id := idFromLocation(t, w.Header().Get("Location"), "/post/")

	saved, err := e.store.Posts.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, saved.IsPublished, "unchecked box stores a draft")

	w = e.postForm("/posts/"+strconv.FormatInt(id, 10), url.Values{
		"title": {"Entrada publicada"}, "author": {"Ana"}, "content": {"<p>Texto</p>"}, "is_published": {"true"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	saved, err = e.store.Posts.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, saved.IsPublished)
	assert.Equal(t, "Entrada publicada", saved.Title)

	w = e.postForm("/posts/"+strconv.FormatInt(id, 10)+"/delete", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	_, err = e.store.Posts.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdmin_EventRedirectsToEvents(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	w := e.postForm("/admin/events", url.Values{
		"title": {"Feria del modelismo"}, "event_date": {"2025-11-02"}, "event_time": {""}, "city_id": {""},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/events", w.Header().Get("Location"))
	assert.Contains(t, e.get("/events").Body.String(), "Feria del modelismo")

	w = e.postForm("/admin/events", url.Values{"title": {"Sin fecha"}, "event_date": {"mañana"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStations_FilterAndCityName(t *testing.T) {
	e := newEnv(t)
	w := e.get("/stations?type=principal")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Barcelona Sants")
	assert.NotContains(t, body, ">Córdoba Central</a></td>")
	assert.Contains(t, body, "<td>Sevilla</td>")
}

func TestProjects_StatusAlias(t *testing.T) {
	e := newEnv(t)
	w := e.get("/projects?status=en-marcha")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Corredor Mediterráneo")
	assert.NotContains(t, w.Body.String(), "Tren-tram de Alicante a Elche</a></h2>")
}

func TestCities_Related(t *testing.T) {
	e := newEnv(t)

	w := e.get("/cities?name=sevil")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Relacionado con Sevilla")
	assert.Contains(t, w.Body.String(), "Sevilla Santa Justa")
	assert.Contains(t, w.Body.String(), "LAV Madrid-Sevilla")

	w = e.get("/cities/sevilla")
	require.Equal(t, http.StatusOK, w.Code)
	city, err := e.store.Cities.GetBySlug(context.Background(), "sevilla")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, e.get("/cities/"+strconv.FormatInt(city.ID, 10)).Code)
	assert.Equal(t, http.StatusNotFound, e.get("/cities/atlantida").Code)
}

func TestPages_Slug(t *testing.T) {
	e := newEnv(t)
	w := e.get("/pages/acerca-de")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acerca de")
	assert.Equal(t, http.StatusNotFound, e.get("/pages/contacto").Code)
}

func TestAPI_Posts(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	var page repository.PageResult[model.Post]
	w := e.get("/api/posts")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Total)

	w = e.get("/api/posts", cookie)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 4, page.Total)

	w = e.sendJSON(http.MethodPost, "/api/posts", `{"title":"API","content":"<p>x</p>","author":"Bot"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsPublished)
	path := "/api/posts/" + strconv.FormatInt(created.ID, 10)
	assert.Equal(t, path, w.Header().Get("Location"))

	w = e.sendJSON(http.MethodPatch, path, `{"title":"API editada"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"API editada"`)

	w = e.sendJSON(http.MethodPut, path, `{"title":"Solo título"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var replaced model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replaced))
	assert.Equal(t, "Solo título", replaced.Title)
	assert.Equal(t, "<p>x</p>", replaced.Content)
	assert.Equal(t, "Bot", replaced.Author)
	assert.True(t, replaced.IsPublished)

	w = e.sendJSON(http.MethodPut, path, `{"title":""}`, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var rejected struct {
		FieldErrors []service.FieldError `json:"field_errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rejected))
	require.Len(t, rejected.FieldErrors, 1)
	assert.Equal(t, "title", rejected.FieldErrors[0].Field)

	w = e.sendJSON(http.MethodPost, "/api/posts", `{"title":`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusBadRequest, e.get("/api/posts/abc").Code)
	assert.Equal(t, http.StatusBadRequest, e.get("/api/posts?limit=x").Code)

	w = e.do(httptest.NewRequest(http.MethodDelete, path, nil), cookie)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, e.get(path).Code)
}

func TestAPI_Published(t *testing.T) {
	e := newEnv(t)

	w := e.get("/api/posts/published")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items      []model.Post `json:"items"`
		Total      int          `json:"total"`
		Pagination struct {
			Page       int  `json:"page"`
			TotalPages int  `json:"total_pages"`
			HasNext    bool `json:"has_next"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Len(t, body.Items, 3)
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, 1, body.Pagination.TotalPages)
	assert.False(t, body.Pagination.HasNext)

	cat, err := e.store.Categories.GetBySlug(context.Background(), "curiosidades")
	require.NoError(t, err)
	w = e.get("/api/posts/published?category_id=" + strconv.FormatInt(cat.ID, 10))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)

	assert.Equal(t, http.StatusBadRequest, e.get("/api/posts/published?page=x").Code)

	w = e.get("/api/posts/published?page=1000000000000000000")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body.Items = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 1000000000000000000, body.Pagination.Page)
}

func TestPagerWithoutPageSizeIsLogged(t *testing.T) {
	var logs bytes.Buffer
	e := newEnvWith(t, zerolog.New(&logs), func(cfg *config.Config) { cfg.Site.PostsPerPage = 0 })

	w := e.get("/events")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "pagination disabled")
}

func TestAPI_Recent(t *testing.T) {
	e := newEnv(t)

	w := e.get("/api/recent?limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items []model.RecentEntry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)

	assert.Equal(t, http.StatusBadRequest, e.get("/api/recent?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, e.get("/api/recent?limit=51").Code)
}

func TestFeed(t *testing.T) {
	e := newEnv(t)
	w := e.get("/feed.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")

	parsed, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	require.Len(t, parsed.Items, 3)
	for _, item := range parsed.Items {
		assert.True(t, strings.HasPrefix(item.Link, "http://blog.test/post/"), item.Link)
	}
}

func TestHealthAndMiddleware(t *testing.T) {
	e := newEnv(t)

	w := e.get("/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(handler.RequestIDHeader))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	req.Header.Set(handler.RequestIDHeader, "abc-123")
	w = e.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(handler.RequestIDHeader))
	assert.JSONEq(t, `{"status":"ready","driver":"sqlite"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, e.get("/api/health/live").Code)
	assert.Equal(t, http.StatusOK, e.get("/static/site.css").Code)
}

func TestNotFound(t *testing.T) {
	e := newEnv(t)

	w := e.get("/no-existe")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "La página que buscas no existe.")

	w = e.get("/api/no-existe")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"resource not found"}`, w.Body.String())
}
