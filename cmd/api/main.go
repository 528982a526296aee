package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/conflu-ai/conflu-api/api/swagger"
	"github.com/conflu-ai/conflu-api/internal/handler"
	"github.com/conflu-ai/conflu-api/internal/middleware"
	"github.com/conflu-ai/conflu-api/internal/repository"
	"github.com/conflu-ai/conflu-api/internal/service"
	"github.com/conflu-ai/conflu-api/pkg/cache"
	"github.com/conflu-ai/conflu-api/pkg/certificate"
	"github.com/conflu-ai/conflu-api/pkg/config"
	"github.com/conflu-ai/conflu-api/pkg/database"
	"github.com/conflu-ai/conflu-api/pkg/logger"
	"github.com/conflu-ai/conflu-api/pkg/mailer"
	corsmiddleware "github.com/conflu-ai/conflu-api/pkg/middleware/cors"
	reqidmiddleware "github.com/conflu-ai/conflu-api/pkg/middleware/requestid"
	"github.com/conflu-ai/conflu-api/pkg/storage"
)

// @title Conflu API
// @version 1.0.0
// @description Administrative backend for the Conflu training platform
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	} else {
		cacheRepo = repository.NewCacheRepository(nil, logr)
	}

	generator, err := certificate.NewGenerator(cfg.Certificate.TemplatePath, certificate.Layout{
		NameX: cfg.Certificate.NameX,
		NameY: cfg.Certificate.NameY,
		DateX: cfg.Certificate.DateX,
		DateY: cfg.Certificate.DateY,
	})
	if err != nil {
		logr.Fatal("failed to load certificate template", zap.Error(err))
	}

	store, err := storage.NewLocalStorage(cfg.Certificate.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare certificate storage", zap.Error(err))
	}

	companyRepo := repository.NewCompanyRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	turmaRepo := repository.NewTurmaRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	userRepo := repository.NewUserRepository(db)

	companySvc := service.NewCompanyService(companyRepo, nil, logr)
	studentSvc := service.NewStudentService(studentRepo, companyRepo, nil, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheRepo, cfg.Cache.TTL, nil, logr)
	turmaSvc := service.NewTurmaService(turmaRepo, courseRepo, nil, logr)
	lessonSvc := service.NewLessonService(lessonRepo, nil, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, studentRepo, courseRepo, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, turmaRepo, nil, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, lessonRepo, enrollmentRepo, nil, logr)
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	certificateSvc := service.NewCertificateService(generator, store, mailer.NewSMTP(cfg.SMTP), cfg.SMTP.SendTimeout, nil, logr)
	metricsSvc := service.NewMetricsService()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(authSvc)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api := r.Group("/")
	api.Use(middleware.JWT(authSvc))
	registerResource(api, "empresas", handler.NewCompanyHandler(companySvc))
	registerResource(api, "alunos", handler.NewStudentHandler(studentSvc))
	registerResource(api, "cursos", handler.NewCourseHandler(courseSvc))
	registerResource(api, "turmas", handler.NewTurmaHandler(turmaSvc))
	registerResource(api, "aulas", handler.NewLessonHandler(lessonSvc))
	registerResource(api, "pagamentos", handler.NewPaymentHandler(paymentSvc))
	registerResource(api, "matriculas", handler.NewEnrollmentHandler(enrollmentSvc))
	registerResource(api, "frequencias", handler.NewAttendanceHandler(attendanceSvc))
	api.POST("/certificados", handler.NewCertificateHandler(certificateSvc).Send)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Certificate.CleanupSpec, func() {
		deleted, err := store.CleanupOlderThan(cfg.Certificate.CleanupTTL)
		if err != nil {
			logr.Warn("certificate cleanup failed", zap.Error(err))
			return
		}
		if len(deleted) > 0 {
			logr.Info("removed orphaned certificate files", zap.Int("count", len(deleted)))
		}
	}); err != nil {
		logr.Fatal("failed to schedule certificate cleanup", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// resourceHandler is the CRUD surface shared by all entity handlers.
type resourceHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerResource(g *gin.RouterGroup, path string, h resourceHandler) {
	g.GET("/"+path, h.List)
	g.POST("/"+path, h.Create)
	g.GET("/"+path+"/:id", h.Get)
	g.PATCH("/"+path+"/:id", h.Update)
	g.DELETE("/"+path+"/:id", h.Delete)
}
