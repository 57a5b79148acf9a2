// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"tutorcenter/internal/app"
	"tutorcenter/internal/infrastructure/http/v1/handlers"
	"tutorcenter/internal/infrastructure/http/v1/middleware"
	"tutorcenter/internal/infrastructure/metrics"
	"tutorcenter/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Container holds every service the handlers call
	Container *app.Container

	// Database backs the health probes; nil uses the container's TxManager
	Database handlers.Database

	// Logger for request logging
	Logger *logger.Logger

	// Metrics adds request metrics and /metrics when set
	Metrics *metrics.Metrics

	// AppName is reported by /health/info
	AppName string

	// Debug keeps gin in debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!). Recovery sits inside ErrorHandler
	// so a recovered panic is still rendered, logged and counted.
	router.Use(middleware.Trace())
	router.Use(middleware.Actor())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	db := cfg.Database
	if db == nil {
		db = cfg.Container.TxManager
	}
	healthHandler := handlers.NewHealthHandler(db, cfg.AppName)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("/api/v1")
	base := handlers.NewBaseHandler()

	registerCatalogRoutes(api, base, cfg.Container)
	registerDocumentRoutes(api, base, cfg.Container)
	registerRegisterRoutes(api, base, cfg.Container)
	registerReportRoutes(api, base, cfg.Container)
	registerPortalRoutes(api, base, cfg.Container)

	return router
}

// crudHandler is implemented by every handlers.CatalogHandler.
type crudHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func crud(g *gin.RouterGroup, h crudHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// registerCatalogRoutes registers reference data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, c *app.Container) {
	crud(rg.Group("/students"), handlers.NewStudentHandler(base, c.Students))
	crud(rg.Group("/classes"), handlers.NewClassHandler(base, c.Classes))
	crud(rg.Group("/subjects"), handlers.NewSubjectHandler(base, c.Subjects))
	crud(rg.Group("/sheets"), handlers.NewSheetHandler(base, c.Sheets))
	crud(rg.Group("/class-subjects"), handlers.NewClassSubjectHandler(base, c.ClassSubjects))
}

// registerDocumentRoutes registers enrollments, attendance and sheet updates.
func registerDocumentRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, c *app.Container) {
	enrollments := handlers.NewEnrollmentHandler(base, c.Enrollments, c.Attendance)
	group := rg.Group("/enrollments")
	{
		group.GET("", enrollments.List)
		group.POST("", enrollments.Create)
		group.GET("/:id", enrollments.Get)
		group.PUT("/:id", enrollments.Update)
		group.POST("/:id/close", enrollments.Close)
		group.POST("/:id/installments/plan", enrollments.PlanInstallments)
		group.GET("/:id/installments", enrollments.ListInstallments)
		group.GET("/:id/attendance", enrollments.Attendance)
	}
	rg.POST("/installments/:id/payments", enrollments.RecordPayment)

	att := handlers.NewAttendanceHandler(base, c.Attendance, c.Clock)
	rg.POST("/attendance/submit", att.Submit)

	sheetUpdates := handlers.NewSheetUpdateHandler(base, c.SheetUpdates)
	rg.GET("/sheet-updates", sheetUpdates.Get)
	rg.POST("/sheet-updates", sheetUpdates.Save)
}

// registerRegisterRoutes registers sheet stock endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, c *app.Container) {
	inventory := handlers.NewInventoryHandler(base, c.Stock)
	rg.GET("/inventory", inventory.List)
	rg.POST("/inventory/:sheetId/actions", inventory.Apply)
}

// registerReportRoutes registers alerts, dashboards and the audit trail.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, c *app.Container) {
	alertHandler := handlers.NewAlertHandler(base, c.Alerts)
	rg.GET("/alerts", alertHandler.List)
	rg.POST("/alerts/:enrollmentId/mark", alertHandler.Mark)

	reportHandler := handlers.NewReportHandler(base, c.Reports, c.Clock)
	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.GET("/dashboard", reportHandler.Dashboard)
		reportsGroup.GET("/sheets", reportHandler.Sheets)
		reportsGroup.GET("/weekly-active", reportHandler.WeeklyActive)
		reportsGroup.GET("/attendance-details", reportHandler.AttendanceDetails)
	}

	auditHandler := handlers.NewAuditHandler(base, c.Audit)
	rg.GET("/audit/:entity/:id", auditHandler.History)
}

// registerPortalRoutes registers the parent lookup.
func registerPortalRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, c *app.Container) {
	portalHandler := handlers.NewPortalHandler(base, c.Portal)
	rg.POST("/portal/login", portalHandler.Login)
	rg.POST("/portal/home", portalHandler.Home)
}
