package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/handler"
	internalmiddleware "github.com/noah-isme/tk-admin-api/internal/middleware"
	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/service"
	"github.com/noah-isme/tk-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tk-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tk-admin-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Classes    *handler.ClassHandler
	Students   *handler.StudentHandler
	Bills      *handler.BillHandler
	Incomes    *handler.IncomeHandler
	Expenses   *handler.ExpenseHandler
	Categories *handler.CategoryHandler
	Dashboard  *handler.DashboardHandler
	Reports    *handler.ReportHandler
	Metrics    *handler.MetricsHandler
}

// Params configures the router.
type Params struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Tokens         internalmiddleware.TokenValidator
	Audit          internalmiddleware.AuditWriter
	Handlers       Handlers
}

// New builds the gin engine with global middleware and all routes.
func New(p Params) *gin.Engine {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.APIPrefix == "" {
		p.APIPrefix = "/api/v1"
	}
	h := p.Handlers

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(corsmiddleware.New(p.AllowedOrigins))
	r.Use(logger.GinMiddleware(p.Logger, "/health", "/ready", "/metrics"))
	r.Use(internalmiddleware.Metrics(p.Metrics))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if p.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	audit := func(action, resource string) gin.HandlerFunc {
		return internalmiddleware.Audit(p.Audit, p.Logger, action, resource)
	}
	adminOnly := internalmiddleware.RequireRoles(models.RoleAdmin)
	staff := internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)

	api := r.Group(p.APIPrefix)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(p.Tokens))

	secured.GET("/auth/me", h.Auth.Me)
	secured.POST("/auth/change-password", h.Auth.ChangePassword)

	users := secured.Group("/users", adminOnly)
	users.GET("", h.Users.List)
	users.POST("", h.Users.Create)
	users.DELETE("/:id", h.Users.Delete)

	classes := secured.Group("/classes")
	classes.GET("", staff, h.Classes.List)
	classes.GET("/:id", staff, h.Classes.Get)
	classes.POST("", adminOnly, h.Classes.Create)
	classes.PUT("/:id", adminOnly, h.Classes.Update)
	classes.DELETE("/:id", adminOnly, audit(models.AuditActionClassDelete, "class"), h.Classes.Delete)

	students := secured.Group("/students")
	students.GET("", staff, h.Students.List)
	students.GET("/:id", staff, h.Students.Get)
	students.POST("", adminOnly, h.Students.Create)
	students.POST("/import", adminOnly, h.Students.Import)
	students.PUT("/:id", adminOnly, h.Students.Update)
	students.DELETE("/:id", adminOnly, audit(models.AuditActionStudentDelete, "student"), h.Students.Delete)

	bills := secured.Group("/bills")
	bills.GET("", staff, h.Bills.List)
	bills.GET("/:id", staff, h.Bills.Get)
	bills.POST("", adminOnly, h.Bills.Create)
	bills.POST("/bulk", adminOnly, audit(models.AuditActionBillBulkCreate, "bill"), h.Bills.BulkCreate)
	bills.PUT("/:id", adminOnly, h.Bills.Update)
	bills.DELETE("/:id", adminOnly, audit(models.AuditActionBillDelete, "bill"), h.Bills.Delete)
	bills.POST("/:id/payments", adminOnly, audit(models.AuditActionPaymentRecord, "bill"), h.Bills.RecordPayment)

	incomes := secured.Group("/incomes", adminOnly)
	incomes.GET("", h.Incomes.List)
	incomes.GET("/:id", h.Incomes.Get)
	incomes.DELETE("/:id", audit(models.AuditActionPaymentCancel, "income"), h.Incomes.Cancel)

	expenses := secured.Group("/expenses", adminOnly)
	expenses.GET("", h.Expenses.List)
	expenses.GET("/:id", h.Expenses.Get)
	expenses.POST("", h.Expenses.Create)
	expenses.PUT("/:id", h.Expenses.Update)
	expenses.DELETE("/:id", h.Expenses.Delete)

	categories := secured.Group("/categories", adminOnly)
	categories.GET("", h.Categories.List)
	categories.POST("", h.Categories.Create)
	categories.PUT("/:id", h.Categories.Update)
	categories.DELETE("/:id", h.Categories.Delete)

	secured.GET("/dashboard", staff, h.Dashboard.Summary)

	reports := secured.Group("/reports", adminOnly)
	reports.GET("/finance", h.Reports.Finance)
	reports.GET("/bills", h.Reports.Bills)

	return r
}
