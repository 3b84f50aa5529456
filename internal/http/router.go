package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// The session must be loaded before CSRF and auth read it
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		if len(cfg.CSRFSecret) > 0 {
			router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies))
		}
	}
	router.Use(auth.NewMiddleware(cfg.SessionManager, cfg.AuthConfig).Handler())

	if cfg.SessionManager != nil && cfg.AuthService != nil {
		var recorder auth.LoginRecorder
		if cfg.AuditService != nil {
			recorder = cfg.AuditService
		}
		auth.NewAuthController(cfg.AuthService, cfg.SessionManager, recorder).RegisterRoutes(router)
	}

	var counter Counter
	if cfg.Programs != nil {
		counter = cfg.Programs
	}
	healthController := NewHealthController(cfg.Database, counter, cfg.Version)
	router.GET("/health", healthController.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	api := router.Group("/api")

	importController := NewImportController(cfg.Orchestrator, cfg.Auditor, cfg.AuditService)
	api.POST("/import", importController.Import)

	catalogController := NewCatalogController(cfg.CatalogImporter, cfg.Auditor, cfg.AuditService)
	api.POST("/import-bodybuilding", catalogController.ImportBodybuilding)
	api.POST("/import-fitnessprogramer", catalogController.ImportFitnessProgramer)

	exportController := NewExportController(cfg.Serializer, cfg.AuditService)
	api.GET("/export", exportController.Export)

	programsController := NewProgramsController(cfg.Programs, cfg.Orchestrator, cfg.Serializer, cfg.Auditor, cfg.AuditService)
	api.GET("/programs", programsController.List)
	api.POST("/programs", programsController.Create)
	api.GET("/programs/export", programsController.Export)
	api.POST("/programs/import", programsController.Import)
	api.PUT("/programs/:id", programsController.Update)
	api.DELETE("/programs/:id", programsController.Delete)

	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
