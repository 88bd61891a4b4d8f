package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodnest/internal/config"
	"foodnest/internal/delivery/http/handler"
	"foodnest/internal/infrastructure/database/postgres"
	"foodnest/internal/logger"
	"foodnest/internal/middleware"
	"foodnest/internal/notifier"
	"foodnest/internal/realtime"
	"foodnest/internal/usecase/auth"
	"foodnest/internal/usecase/combo"
	"foodnest/internal/usecase/food"
	"foodnest/internal/usecase/passwordreset"
	"foodnest/internal/usecase/prep"
	"foodnest/internal/usecase/team"
	"foodnest/internal/usecase/user"
	"foodnest/pkg/crypto"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, cipher *crypto.Cipher) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Upload.MaxSizeByte + (2 << 20)))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	// Uploaded food images are served statically.
	router.Static("/uploads", cfg.Upload.Dir)

	mailer := notifier.NewSMTPMailer(cfg.SMTP)
	hub := realtime.NewHub()

	userRepository := postgres.NewUserRepository(db)
	requestRepository := postgres.NewRegistrationRequestRepository(db)
	resetCodeRepository := postgres.NewResetCodeRepository(db)
	foodRepository := postgres.NewFoodRepository(db)
	comboRepository := postgres.NewComboRepository(db)
	prepRepository := postgres.NewPrepRepository(db)
	teamRepository := postgres.NewTeamRepository(db)

	authService := auth.NewService(userRepository, requestRepository, cfg)
	resetService := passwordreset.NewService(userRepository, resetCodeRepository, mailer, cfg.OTP)
	userService := user.NewService(userRepository, requestRepository, mailer, cipher)
	imageStore := food.NewImageStore(cfg.Upload, cfg.Server.BaseURL)
	foodService := food.NewService(foodRepository, imageStore)
	comboService := combo.NewService(comboRepository, foodRepository)
	prepService := prep.NewService(prepRepository, foodRepository, userRepository, hub)
	teamService := team.NewService(teamRepository, userRepository)

	authHandler := handler.NewAuthHandler(authService)
	resetHandler := handler.NewPasswordResetHandler(resetService)
	userHandler := handler.NewUserHandler(userService)
	foodHandler := handler.NewFoodHandler(foodService)
	comboHandler := handler.NewComboHandler(comboService)
	prepHandler := handler.NewPrepHandler(prepService, hub)
	teamHandler := handler.NewTeamHandler(teamService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		resetHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, userRepository))
		{
			authHandler.RegisterProtectedRoutes(protected)
			userHandler.RegisterRoutes(protected)
			foodHandler.RegisterRoutes(protected)
			comboHandler.RegisterRoutes(protected)
			prepHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.SuperadminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
				teamHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
