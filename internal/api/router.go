package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/hanulpark/portal/config"
	_ "github.com/hanulpark/portal/docs"
	"github.com/hanulpark/portal/internal/api/handler"
	"github.com/hanulpark/portal/internal/middleware"
	"github.com/hanulpark/portal/internal/service"
)

// NewRouter 注册全部路由与中间件。rdb 仅在启用 redis 时非空。
func NewRouter(cfg *config.Config, h *handler.Handler, rdb *redis.Client) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	if cfg.Sentry.Enabled {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware("memorial-portal"))
	}
	r.Use(middleware.CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.MaxMultipartMemory = cfg.Upload.MaxSize

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		login := api.Group("")
		if cfg.RateLimit.Enabled {
			login.Use(middleware.LoginRateLimit(cfg.RateLimit, rdb))
		}
		login.POST("/login", h.Login)

		api.POST("/users/deceased", h.RegisterDeceased)

		api.GET("/deceased/:name", h.GetDeceased)
		api.GET("/deceased-images/:id", h.GetDeceasedImage)

		api.GET("/guestbook", h.ListPosts)
		api.POST("/guestbook", h.CreatePost)
		api.DELETE("/guestbook/:id", h.DeletePost)

		api.POST("/photos", h.UploadPhoto)
		api.GET("/photos", h.ListPhotos)
		api.GET("/photos/slots", h.ListSlots)
		api.GET("/images/:id", h.GetImage)
		api.DELETE("/photos/:id", h.DeletePhoto)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Upload.Storage == service.StorageDisk {
		r.Static("/uploads", cfg.Upload.Dir)
	}

	// 客户端是单页应用：未命中的非 API 路径回落到入口文档
	if cfg.Server.StaticDir != "" {
		registerSPA(r, cfg.Server.StaticDir)
	}

	return r
}

func registerSPA(r *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		path := filepath.Join(dir, filepath.Clean(c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.Status(http.StatusNotFound)
	})
}
