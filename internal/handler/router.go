package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/middleware"
	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/internal/service"
	"github.com/noah-isme/course-viewer/pkg/config"
	"github.com/noah-isme/course-viewer/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-viewer/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-viewer/pkg/middleware/requestid"
)

// RouterDeps carries the handlers and services mounted by NewRouter.
type RouterDeps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *service.MetricsService
	Auth     *service.AuthService
	Catalog  *CatalogHandler
	Sessions *SessionHandler
	Exports  *ExportHandler
	Page     *PageHandler
	Ops      *MetricsHandler
}

// NewRouter assembles the gin engine.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics, "/metrics"))

	r.GET("/", deps.Page.Index)
	r.GET("/health", deps.Ops.Health)
	r.GET("/ready", deps.Ops.Ready)
	r.GET("/metrics", deps.Ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())
	{
		api.GET("/courses", deps.Catalog.List)
		api.GET("/courses/export", deps.Exports.Download)
		api.GET("/columns", deps.Catalog.Columns)
		api.GET("/days", deps.Catalog.Days)

		sessions := api.Group("/sessions")
		sessions.POST("", deps.Sessions.Create)
		sessions.GET("/:id", deps.Sessions.Get)
		sessions.PUT("/:id", deps.Sessions.Update)
		sessions.PUT("/:id/days", deps.Sessions.SubmitDays)
		sessions.GET("/:id/courses", deps.Sessions.Courses)

		api.POST("/catalog/refresh",
			middleware.JWT(deps.Auth),
			middleware.RequireRoles(models.RoleAdmin),
			deps.Catalog.Refresh,
		)
	}

	return r
}
