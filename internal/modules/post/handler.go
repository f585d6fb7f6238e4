package post

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"minifacebook/internal/middleware"
	"minifacebook/internal/modules/media"
	"minifacebook/internal/pkg/response"
)

// multipartOverhead covers form fields and part headers on top of the files.
const multipartOverhead = 1 << 20

type Handler struct {
	svc          *Service
	maxFileBytes int64
}

func NewHandler(svc *Service, maxFileBytes int64) *Handler {
	if maxFileBytes <= 0 {
		maxFileBytes = media.MaxFileSize
	}
	return &Handler{svc: svc, maxFileBytes: maxFileBytes}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	posts := protected.Group("/posts")
	{
		posts.POST("", h.Create)
		posts.GET("", h.List)
		posts.PUT("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
		posts.POST("/:id/like", h.ToggleLike)
	}
}

// Create publishes a post from a multipart form: "content" plus up to ten
// "media" files. A plain JSON body with only content is accepted too.
// @Summary		Create post
// @Tags		Posts
// @Security	BearerAuth
// @Accept		multipart/form-data
// @Param		content	formData	string	false	"Post text"
// @Param		media	formData	file	false	"Image or video, repeatable up to 10"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Empty post, bad file type or too many files"
// @Failure		413	{object}	map[string]interface{} "File too large"
// @Router		/posts [POST]
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	req, ok := h.bindCreate(c)
	if !ok {
		return
	}

	view, err := h.svc.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err, "Failed to create post")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Post created",
		"post":    view,
	})
}

func (h *Handler) bindCreate(c *gin.Context) (CreatePostRequest, bool) {
	var req CreatePostRequest

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var body UpdatePostRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
				return req, false
			}
		}
		req.Content = body.Content
		return req, true
	}

	limit := int64(MaxFilesPerPost+1)*h.maxFileBytes + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Upload is too large")
			return req, false
		}
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid multipart form")
		return req, false
	}

	if v := form.Value["content"]; len(v) > 0 {
		req.Content = v[0]
	}
	req.Files = form.File["media"]
	return req, true
}

// List returns the feed, newest first.
// @Summary		List posts
// @Tags		Posts
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/posts [GET]
func (h *Handler) List(c *gin.Context) {
	posts, err := h.svc.ListPosts(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		middleware.InternalError(c, err, "Failed to load posts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts})
}

// Update replaces the text of the caller's own post.
// @Summary		Update post
// @Tags		Posts
// @Security	BearerAuth
// @Param		id		path	int					true	"Post ID"
// @Param		request	body	UpdatePostRequest	true	"New content"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/posts/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	postID, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	view, err := h.svc.UpdatePost(c.Request.Context(), postID, c.GetInt64(middleware.CtxUserID), req.Content)
	if err != nil {
		h.writeError(c, err, "Failed to update post")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Post updated",
		"post":    view,
	})
}

// @Summary		Delete post
// @Tags		Posts
// @Security	BearerAuth
// @Param		id	path	int	true	"Post ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/posts/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	postID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), postID, c.GetInt64(middleware.CtxUserID)); err != nil {
		h.writeError(c, err, "Failed to delete post")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

// @Summary		Like or unlike a post
// @Tags		Posts
// @Security	BearerAuth
// @Param		id	path	int	true	"Post ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/posts/{id}/like [POST]
func (h *Handler) ToggleLike(c *gin.Context) {
	postID, ok := parseID(c)
	if !ok {
		return
	}

	liked, err := h.svc.ToggleLike(c.Request.Context(), postID, c.GetInt64(middleware.CtxUserID))
	if err != nil {
		h.writeError(c, err, "Failed to toggle like")
		return
	}

	message := "Post liked"
	if !liked {
		message = "Post unliked"
	}
	response.Success(c, http.StatusOK, gin.H{
		"liked":   liked,
		"message": message,
	})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyPost):
		response.Error(c, http.StatusBadRequest, "EMPTY_POST", "Post must have content or media")
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "EMPTY_CONTENT", "Content must not be empty")
	case errors.Is(err, ErrTooManyFiles):
		response.Error(c, http.StatusBadRequest, "TOO_MANY_FILES", "At most 10 files per post")
	case errors.Is(err, media.ErrUnsupportedType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only image and video files are accepted")
	case errors.Is(err, media.ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Uploaded file is empty")
	case errors.Is(err, media.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the maximum allowed size")
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only modify your own posts")
	default:
		middleware.InternalError(c, err, fallback)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID")
		return 0, false
	}
	return id, true
}
