package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"minifacebook/internal/config"
	"minifacebook/internal/middleware"
	"minifacebook/internal/modules/auth"
	"minifacebook/internal/modules/comment"
	"minifacebook/internal/modules/media"
	"minifacebook/internal/modules/post"
	jwtsvc "minifacebook/internal/pkg/jwt"
	"minifacebook/internal/repository"
)

// Deps is everything the router needs that main builds once.
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Store    media.Store
	Registry *prometheus.Registry
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	userRepo := repository.NewUserRepository(d.DB)
	postRepo := repository.NewPostRepository(d.DB)
	commentRepo := repository.NewCommentRepository(d.DB)

	tokens := jwtsvc.New(d.Config.JWTSecret, d.Config.JWTTTL)

	mediaService := media.NewService(d.Store, d.Config.MaxUploadBytes, log.Named("media"))
	mediaHandler := media.NewHandler(d.Store)

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens))
	postHandler := post.NewHandler(post.NewService(postRepo, mediaService, log.Named("post")), mediaService.MaxSize())
	commentHandler := comment.NewHandler(comment.NewService(commentRepo, postRepo))

	r := gin.New()
	// Logging and metrics wrap Recovery so recovered panics show up as 500s.
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.NewMetrics(reg).Handler(),
		middleware.Recovery(log),
		middleware.CORS(d.Config.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	mediaHandler.RegisterRoutes(r)

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			postHandler.RegisterRoutes(protected)
			commentHandler.RegisterRoutes(protected)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	return r
}
