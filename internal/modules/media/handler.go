package media

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"minifacebook/internal/pkg/response"
)

const presignTTL = 15 * time.Minute

type presigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (*url.URL, error)
}

// Handler serves stored media back under URLPrefix.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET(URLPrefix+"/*key", h.Serve)
	r.HEAD(URLPrefix+"/*key", h.Serve)
}

// Serve streams a local file, or redirects to a short-lived presigned URL
// when media lives in object storage.
func (h *Handler) Serve(c *gin.Context) {
	key, err := cleanKey(c.Param("key"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		return
	}

	switch s := h.store.(type) {
	case *LocalStore:
		path := s.Path(key)
		if fi, err := os.Stat(path); err != nil || fi.IsDir() {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
			return
		}
		c.File(path)
	case presigner:
		u, err := s.PresignGet(c.Request.Context(), key, presignTTL)
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch file")
			return
		}
		c.Redirect(http.StatusFound, u.String())
	default:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
	}
}
