package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Avinash9006/InfinityPower/internal/cache"
	"github.com/Avinash9006/InfinityPower/internal/config"
	"github.com/Avinash9006/InfinityPower/internal/events"
	"github.com/Avinash9006/InfinityPower/internal/handlers"
	"github.com/Avinash9006/InfinityPower/internal/metrics"
	"github.com/Avinash9006/InfinityPower/internal/middleware"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/repository"
	"github.com/Avinash9006/InfinityPower/internal/services"
	"github.com/Avinash9006/InfinityPower/internal/storage"
)

func main() {
	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logrus.New()
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Database
	db, err := initDatabase(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	if err := autoMigrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}
	logger.Info("Connected to database")

	// Object storage (S3-compatible)
	store, err := storage.NewS3Provider(cfg.Storage, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize object storage")
	}

	// Redis signed-URL cache (optional; URLs are re-signed on miss)
	var urlCache cache.URLCache = cache.NewNoopCache()
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to Redis, signed URLs will not be cached")
		} else {
			urlCache = redisCache
			logger.Info("Connected to Redis")
		}
	}

	// NATS event publishing (optional; a nil publisher is a no-op)
	var publisher *events.Publisher
	if cfg.NATS.Enabled {
		publisher, err = events.NewPublisher(cfg.NATS.URL, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to NATS, event publishing disabled")
		} else {
			logger.Info("Connected to NATS")
		}
	}

	// Metrics
	metricsCollector := metrics.New()
	go trackDBStats(db, metricsCollector)

	// Repositories
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	// Services
	passwordSvc := services.NewPasswordService()
	jwtSvc := services.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	emailSvc := services.NewEmailService(cfg.Email, logger)
	authSvc := services.NewAuthService(userRepo, inviteRepo, passwordSvc, jwtSvc, publisher, logger)
	tenantSvc := services.NewTenantService(
		tenantRepo,
		userRepo,
		inviteRepo,
		passwordSvc,
		store,
		emailSvc,
		publisher,
		logger,
		cfg.App.FrontendURL,
		cfg.App.InviteTokenTTL,
	)
	catalogSvc := services.NewCatalogService(courseRepo, subjectRepo, chapterRepo, logger)
	mediaSvc := services.NewMediaService(
		videoRepo,
		resourceRepo,
		chapterRepo,
		store,
		urlCache,
		publisher,
		logger,
		cfg.Storage.SignedURLTTL,
	)
	userSvc := services.NewUserService(
		userRepo,
		inviteRepo,
		passwordSvc,
		store,
		logger,
		cfg.App.FrontendURL,
		cfg.App.InviteTokenTTL,
	)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authSvc)
	tenantHandler := handlers.NewTenantHandler(tenantSvc)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc)
	videoHandler := handlers.NewVideoHandler(mediaSvc, metricsCollector)
	resourceHandler := handlers.NewResourceHandler(mediaSvc, metricsCollector)
	userHandler := handlers.NewUserHandler(userSvc)
	adminHandler := handlers.NewAdminHandler(userSvc)

	router := setupRouter(
		cfg,
		logger,
		metricsCollector,
		jwtSvc,
		userRepo,
		healthHandler,
		authHandler,
		tenantHandler,
		catalogHandler,
		videoHandler,
		resourceHandler,
		userHandler,
		adminHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	publisher.Close()
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			logger.WithError(err).Error("Error closing Redis connection")
		}
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	// gen_random_uuid() requires pgcrypto on postgres < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.InviteToken{},
		&models.Course{},
		&models.Subject{},
		&models.Chapter{},
		&models.Video{},
		&models.Resource{},
		&models.Enrollment{},
		&models.Order{},
	)
}

func trackDBStats(db *gorm.DB, m *metrics.Metrics) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	for range time.Tick(15 * time.Second) {
		stats := sqlDB.Stats()
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
	}
}

func setupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	metricsCollector *metrics.Metrics,
	jwtSvc *services.JWTService,
	userRepo *repository.UserRepository,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	tenantHandler *handlers.TenantHandler,
	catalogHandler *handlers.CatalogHandler,
	videoHandler *handlers.VideoHandler,
	resourceHandler *handlers.ResourceHandler,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.AllowCredentials = true

	router.Use(cors.New(corsConfig))
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(metricsCollector.GinMiddleware())
	router.Use(bodySizeLimit(cfg.App.MaxUploadSizeMB << 20))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	authRequired := middleware.AuthRequired(jwtSvc, userRepo)

	v1 := router.Group("/api/v1")
	{
		// Public endpoints
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
		v1.POST("/tenants", tenantHandler.CreateTenant)

		// Platform administration
		tenants := v1.Group("/tenants", authRequired)
		{
			tenants.GET("", middleware.RequireCapability("tenants", middleware.ActionRead), tenantHandler.ListTenants)
			tenants.GET("/:id", middleware.RequireCapability("tenants", middleware.ActionRead), tenantHandler.GetTenant)
			tenants.POST("/invite", middleware.RequireCapability("tenants", middleware.ActionInvite), tenantHandler.SendInvite)
		}

		// Course catalog
		courses := v1.Group("/courses", authRequired)
		{
			read := middleware.RequireCapability("courses", middleware.ActionRead)
			write := middleware.RequireCapability("courses", middleware.ActionWrite)

			courses.POST("", write, catalogHandler.CreateCourse)
			courses.GET("", read, catalogHandler.ListCourses)
			courses.GET("/:id", read, catalogHandler.GetCourse)
			courses.PUT("/:id", write, catalogHandler.UpdateCourse)
			courses.DELETE("/:id", write, catalogHandler.DeleteCourse)
		}

		subjects := v1.Group("/subjects", authRequired)
		{
			read := middleware.RequireCapability("subjects", middleware.ActionRead)
			write := middleware.RequireCapability("subjects", middleware.ActionWrite)

			subjects.POST("", write, catalogHandler.CreateSubject)
			subjects.GET("/course/:courseId", read, catalogHandler.ListSubjects)
			subjects.GET("/:id", read, catalogHandler.GetSubject)
			subjects.PUT("/:id", write, catalogHandler.UpdateSubject)
			subjects.DELETE("/:id", write, catalogHandler.DeleteSubject)
		}

		chapters := v1.Group("/chapters", authRequired)
		{
			read := middleware.RequireCapability("chapters", middleware.ActionRead)
			write := middleware.RequireCapability("chapters", middleware.ActionWrite)

			chapters.POST("", write, catalogHandler.CreateChapter)
			chapters.GET("/subject/:subjectId", read, catalogHandler.ListChapters)
			chapters.GET("/:id", read, catalogHandler.GetChapter)
			chapters.PUT("/:id", write, catalogHandler.UpdateChapter)
			chapters.DELETE("/:id", write, catalogHandler.DeleteChapter)
		}

		// Media
		videos := v1.Group("/videos", authRequired)
		{
			read := middleware.RequireCapability("videos", middleware.ActionRead)
			write := middleware.RequireCapability("videos", middleware.ActionWrite)

			videos.POST("/upload", write, videoHandler.Upload)
			videos.POST("/link", write, videoHandler.AddLink)
			videos.GET("", read, videoHandler.List)
			videos.GET("/chapter/:chapterId", read, videoHandler.ListByChapter)
			videos.GET("/:id", read, videoHandler.Get)
			videos.PUT("/:id", write, videoHandler.Update)
			videos.DELETE("/:id", write, videoHandler.Delete)
		}

		resources := v1.Group("/resources", authRequired)
		{
			read := middleware.RequireCapability("resources", middleware.ActionRead)
			write := middleware.RequireCapability("resources", middleware.ActionWrite)

			resources.POST("/upload", write, resourceHandler.Upload)
			resources.POST("/link", write, resourceHandler.AddLink)
			resources.GET("", read, resourceHandler.List)
			resources.GET("/chapter/:chapterId", read, resourceHandler.ListByChapter)
			resources.GET("/:id", read, resourceHandler.Get)
			resources.DELETE("/:id", write, resourceHandler.Delete)
		}

		// Self-service profile
		users := v1.Group("/users", authRequired)
		{
			users.GET("/me", middleware.RequireCapability("profile", middleware.ActionRead), userHandler.GetProfile)
			users.PUT("/me", middleware.RequireCapability("profile", middleware.ActionWrite), userHandler.UpdateProfile)
		}

		// Tenant administration
		admin := v1.Group("/admin", authRequired, middleware.RequireCapability("users", middleware.ActionManage))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users/:id/assign-role", adminHandler.AssignRole)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.GET("/invite-link", adminHandler.InviteLink)
		}
	}

	return router
}

// bodySizeLimit caps request bodies so oversized uploads fail early
// instead of streaming through to object storage.
func bodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
