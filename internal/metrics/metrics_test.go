package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/metrics"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/post/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/post/1", "/post/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	m.Login(false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `railway_blog_http_requests_total{method="GET",route="/post/:id",status="200"} 2`)
	assert.Contains(t, body, `railway_blog_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, `railway_blog_admin_logins_total{outcome="failure"} 1`)

	n, err := testutil.GatherAndCount(m.Registry(), "railway_blog_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "two app routes plus the scrape itself")
}
