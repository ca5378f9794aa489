package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/railway-blog-service/internal/feed"
)

// feed serves the latest published posts as RSS.
func (h *Handler) feed(c *gin.Context) {
	listing, err := h.svc.Posts.ListPublished(c.Request.Context(), nil, 1, h.site.FeedSize)
	if err != nil {
		h.fail(c, err)
		return
	}
	body, err := feed.Render(feed.Channel{
		Title:       h.site.Title,
		BaseURL:     h.baseURL,
		Description: "Últimas entradas de " + h.site.Title,
	}, listing.Items)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, feed.ContentType, body)
}
