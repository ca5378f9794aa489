package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/railway-blog-service/internal/model"
	"github.com/maxviazov/railway-blog-service/internal/pagination"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/service"
	"github.com/maxviazov/railway-blog-service/pkg/response"
)

// maxRecentLimit bounds ?limit= of /api/recent.
const maxRecentLimit = 50

// publishedPage is the body of GET /api/posts/published.
type publishedPage struct {
	Items      []model.Post          `json:"items"`
	Total      int                   `json:"total"`
	Pagination *pagination.Paginator `json:"pagination"`
	Pages      []pagination.PageItem `json:"pages"`
}

func (h *Handler) registerAPI(api *gin.RouterGroup) {
	health := api.Group("/health")
	{
		health.GET("/live", h.liveness)
		health.GET("/ready", h.readiness)
	}

	api.GET("/recent", h.apiRecent)

	posts := api.Group("/posts")
	{
		posts.GET("", h.apiListPosts)
		posts.GET("/published", h.apiPublished)
		posts.GET("/:id", h.apiGetPost)

		admin := posts.Group("", requireAdmin(true))
		admin.POST("", h.apiCreatePost)
		admin.PUT("/:id", h.apiPatchPost)
		admin.PATCH("/:id", h.apiPatchPost)
		admin.DELETE("/:id", h.apiDeletePost)
	}
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.NewInvalidInputError(name, "must be an integer")
	}
	return n, nil
}

func apiID(c *gin.Context) (int64, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		response.WriteError(c, service.NewInvalidInputError("id", "must be a positive integer"))
	}
	return id, ok
}

// apiListPosts lists posts by limit/offset; drafts are included for the admin.
func (h *Handler) apiListPosts(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.Posts.List(c.Request.Context(), !isAdmin(c), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *Handler) apiPublished(c *gin.Context) {
	page, err := queryPage(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	listing, err := h.svc.Posts.ListPublished(c.Request.Context(), queryID(c, "category_id"), page, h.site.PostsPerPage)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	p, err := pagination.New(listing.Page, listing.TotalPages, listing.PerPage)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, publishedPage{
		Items:      listing.Items,
		Total:      listing.Total,
		Pagination: p,
		Pages:      p.Pages(),
	})
}

func (h *Handler) apiGetPost(c *gin.Context) {
	id, ok := apiID(c)
	if !ok {
		return
	}
	post, err := h.svc.Posts.Get(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if !post.IsPublished && !isAdmin(c) {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	response.WriteData(c, http.StatusOK, post)
}

func (h *Handler) apiCreatePost(c *gin.Context) {
	var in service.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.WriteError(c, service.NewInvalidInputError("body", "malformed JSON"))
		return
	}
	post, err := h.svc.Posts.Create(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.Created(c, APIPrefix+"/posts/"+strconv.FormatInt(post.ID, 10), post)
}

// apiPatchPost serves PUT and PATCH; absent fields keep their stored value.
func (h *Handler) apiPatchPost(c *gin.Context) {
	id, ok := apiID(c)
	if !ok {
		return
	}
	var in service.PostPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		response.WriteError(c, service.NewInvalidInputError("body", "malformed JSON"))
		return
	}
	post, err := h.svc.Posts.Patch(c.Request.Context(), id, in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, post)
}

func (h *Handler) apiDeletePost(c *gin.Context) {
	id, ok := apiID(c)
	if !ok {
		return
	}
	if err := h.svc.Posts.Delete(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) apiRecent(c *gin.Context) {
	limit, err := queryInt(c, "limit", h.site.RecentLimit)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if limit < 1 || limit > maxRecentLimit {
		response.WriteError(c, service.NewInvalidInputError("limit", "must be between 1 and 50"))
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"items": h.recent.Build(c.Request.Context(), limit)})
}
