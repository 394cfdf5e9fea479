package handlers

import (
	"dailylog/middleware"

	"github.com/gin-gonic/gin"
)

// Store is everything the API needs from persistence. *database.DB implements it.
type Store interface {
	LogStore
	AttachmentStore
	ProjectStore
	TeamLeaderStore
	middleware.TeamLeaderLookup
}

// RouterConfig carries the settings the routes depend on.
type RouterConfig struct {
	AdminToken     string
	MaxUploadBytes int64
	Metrics        *middleware.Metrics
}

// NewRouter wires every route onto a gin engine with the default logger and recovery.
func NewRouter(store Store, cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Instrument())
		r.GET("/metrics", cfg.Metrics.Handler())
	}

	r.GET("/health", HealthCheck)

	authed := r.Group("/", middleware.AuthRequired(store))
	{
		authed.GET("/logs", ListLogs(store))
		authed.POST("/logs", CreateLog(store))
		authed.GET("/logs/:id", GetLog(store))
		authed.PUT("/logs/:id", UpdateLog(store))

		upload := []gin.HandlerFunc{}
		if cfg.Metrics != nil {
			upload = append(upload, cfg.Metrics.CountPhotos())
		}
		upload = append(upload, UploadPhotos(store, cfg.MaxUploadBytes))
		authed.POST("/logs/:id/photos", upload...)

		authed.GET("/attachments/:id", GetAttachment(store))
		authed.GET("/projects", ListProjects(store))
		authed.GET("/projects/:id", GetProject(store))
	}

	admin := r.Group("/", middleware.AdminRequired(cfg.AdminToken))
	{
		admin.POST("/projects", CreateProject(store))
		admin.PATCH("/projects/:id", UpdateProject(store))
		admin.DELETE("/projects/:id", DeleteProject(store))
		admin.POST("/team-leaders", CreateTeamLeader(store))
	}

	return r
}
