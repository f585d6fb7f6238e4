package comment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"minifacebook/internal/middleware"
	"minifacebook/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/posts/:id/comments", h.Create)
	protected.DELETE("/comments/:id", h.Delete)
}

// @Summary		Comment on a post
// @Tags		Comments
// @Security	BearerAuth
// @Param		id		path	int						true	"Post ID"
// @Param		request	body	CreateCommentRequest	true	"Comment text"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/posts/{id}/comments [POST]
func (h *Handler) Create(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid post ID")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	view, err := h.svc.AddComment(c.Request.Context(), postID, c.GetInt64(middleware.CtxUserID), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyContent):
			response.Error(c, http.StatusBadRequest, "EMPTY_CONTENT", "Comment must not be empty")
		case errors.Is(err, ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
		default:
			middleware.InternalError(c, err, "Failed to add comment")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Comment added",
		"comment": view,
	})
}

// @Summary		Delete comment
// @Tags		Comments
// @Security	BearerAuth
// @Param		id	path	int	true	"Comment ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/comments/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || commentID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	err = h.svc.DeleteComment(c.Request.Context(), commentID, c.GetInt64(middleware.CtxUserID))
	if err != nil {
		switch {
		case errors.Is(err, ErrCommentNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Comment not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only delete your own comments")
		default:
			middleware.InternalError(c, err, "Failed to delete comment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Comment deleted"})
}
