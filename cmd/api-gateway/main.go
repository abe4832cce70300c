package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tk-admin-api/api/swagger"
	"github.com/noah-isme/tk-admin-api/internal/handler"
	"github.com/noah-isme/tk-admin-api/internal/repository"
	"github.com/noah-isme/tk-admin-api/internal/router"
	"github.com/noah-isme/tk-admin-api/internal/service"
	"github.com/noah-isme/tk-admin-api/pkg/cache"
	"github.com/noah-isme/tk-admin-api/pkg/config"
	"github.com/noah-isme/tk-admin-api/pkg/database"
	"github.com/noah-isme/tk-admin-api/pkg/export"
	"github.com/noah-isme/tk-admin-api/pkg/logger"
)

// @title TK Admin API
// @version 1.0.0
// @description Kindergarten administration: students, classes, tuition billing and bookkeeping.
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logr); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		// The dashboard falls back to live queries without the cache.
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	engine := buildRouter(cfg, db, redisClient, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildRouter(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, logr *zap.Logger) *gin.Engine {
	validate := validator.New()
	metrics := service.NewMetricsService()
	billing := service.BillingOptions{
		Location:        cfg.Billing.Location(),
		DefaultCategory: cfg.Billing.DefaultCategory,
		InitialDueDay:   cfg.Billing.InitialDueDay,
	}

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	billRepo := repository.NewBillRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	uow := repository.NewBillingUnitOfWork(db)

	var cacheRepo service.CacheRepository
	checks := map[string]handler.Pinger{"postgres": db}
	if redisClient != nil {
		redisRepo := repository.NewCacheRepository(redisClient, logr)
		cacheRepo = redisRepo
		checks["redis"] = handler.PingFunc(redisRepo.Ping)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, cacheSvc, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, classRepo, uow, cacheSvc, metrics, validate, logr, billing)
	billSvc := service.NewBillService(billRepo, studentRepo, uow, cacheSvc, metrics, validate, logr, billing)
	paymentSvc := service.NewPaymentService(incomeRepo, uow, cacheSvc, metrics, validate, logr, billing)
	expenseSvc := service.NewExpenseService(expenseRepo, cacheSvc, validate, logr)
	categorySvc := service.NewCategoryService(categoryRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Students: studentRepo,
		Classes:  classRepo,
		Incomes:  incomeRepo,
		Expenses: expenseRepo,
		Bills:    billRepo,
		Trends:   dashboardRepo,
		Cache:    cacheSvc,
		Logger:   logr,
		Config: service.DashboardServiceConfig{
			CacheTTL:      cfg.Dashboard.CacheTTL,
			Location:      billing.Location,
			CacheDisabled: !cacheSvc.Enabled(),
		},
	})
	reportSvc := service.NewReportService(incomeRepo, expenseRepo, billRepo, export.NewCSVExporter(), export.NewPDFExporter(), service.ReportConfig{
		SchoolName:    cfg.Reports.SchoolName,
		City:          cfg.Reports.City,
		TreasurerName: cfg.Reports.TreasurerName,
		PrincipalName: cfg.Reports.PrincipalName,
		Location:      billing.Location,
	}, logr)

	return router.New(router.Params{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Logger:         logr,
		Metrics:        metrics,
		Tokens:         authSvc,
		Audit:          userRepo,
		Handlers: router.Handlers{
			Auth:       handler.NewAuthHandler(authSvc),
			Users:      handler.NewUserHandler(userSvc),
			Classes:    handler.NewClassHandler(classSvc),
			Students:   handler.NewStudentHandler(studentSvc),
			Bills:      handler.NewBillHandler(billSvc, paymentSvc),
			Incomes:    handler.NewIncomeHandler(paymentSvc),
			Expenses:   handler.NewExpenseHandler(expenseSvc),
			Categories: handler.NewCategoryHandler(categorySvc),
			Dashboard:  handler.NewDashboardHandler(dashboardSvc),
			Reports:    handler.NewReportHandler(reportSvc),
			Metrics:    handler.NewMetricsHandler(metrics, checks),
		},
	})
}
