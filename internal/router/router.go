package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gstbill/internal/handler"
	"gstbill/internal/middleware"
	"gstbill/internal/service"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Document  *handler.DocumentHandler
	Numbering *handler.NumberingHandler
	Email     *handler.EmailHandler
	Catalog   *handler.CatalogHandler
	Report    *handler.ReportHandler
	Backup    *handler.BackupHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	v1.POST("/totals/preview", h.Document.PreviewTotals)
	v1.POST("/numbering/validate", h.Numbering.Validate)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	users := protected.Group("/users")
	users.GET("/me", h.User.Me)
	users.PUT("/me", h.User.UpdateMe)
	users.PUT("/me/password", h.User.ChangePassword)

	docs := protected.Group("/documents")
	docs.POST("", h.Document.Create)
	docs.GET("", h.Document.List)
	docs.DELETE("", h.Document.DeleteAll)
	docs.POST("/import", h.Document.Import)
	docs.GET("/:id", h.Document.GetByID)
	docs.PUT("/:id", h.Document.Update)
	docs.DELETE("/:id", h.Document.Delete)
	docs.GET("/:id/pdf", h.Document.PDF)
	docs.GET("/:id/summary.csv", h.Document.SummaryCSV)
	docs.GET("/:id/email", h.Email.Compose)
	docs.POST("/:id/email/draft", h.Email.Draft)
	docs.POST("/:id/email/send", h.Email.Send)

	numbering := protected.Group("/numbering")
	numbering.GET("/next", h.Numbering.Next)
	numbering.GET("/recent", h.Numbering.Recent)
	numbering.GET("/duplicate", h.Numbering.Duplicate)

	catalogs := protected.Group("/catalogs/:kind")
	catalogs.GET("", h.Catalog.Get)
	catalogs.PUT("", h.Catalog.Save)
	catalogs.DELETE("", h.Catalog.Clear)
	catalogs.GET("/info", h.Catalog.Info)
	catalogs.GET("/suggest", h.Catalog.Suggest)
	catalogs.POST("/import", h.Catalog.Import)
	catalogs.POST("/import/sheet", h.Catalog.ImportSheet)
	catalogs.GET("/export", h.Catalog.Export)

	reports := protected.Group("/reports")
	reports.GET("/sales", h.Report.Sales)
	reports.GET("/sales/export", h.Report.Export)

	backup := protected.Group("/backup")
	backup.GET("", h.Backup.Download)
	backup.GET("/info", h.Backup.Info)
	backup.POST("/restore", h.Backup.Restore)
	backup.POST("/archive", h.Backup.Archive)
	backup.POST("/archive/restore", h.Backup.RestoreArchive)

	return r
}
