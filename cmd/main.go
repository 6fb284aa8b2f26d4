package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Gradebook/config"
	_ "github.com/lshigami/Gradebook/docs" // Swagger docs - auto-generated
	"github.com/lshigami/Gradebook/internal/controller"
	adminctrl "github.com/lshigami/Gradebook/internal/controller/admin"
	notificationctrl "github.com/lshigami/Gradebook/internal/controller/notification"
	userctrl "github.com/lshigami/Gradebook/internal/controller/user"
	"github.com/lshigami/Gradebook/internal/gateway"
	"github.com/lshigami/Gradebook/internal/logger"
	"github.com/lshigami/Gradebook/internal/repository"
	"github.com/lshigami/Gradebook/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title Gradebook Dashboard API
// @version 1.0
// @description Test attempts, grading, results and notifications for the school dashboard. Data lives in the school-platform backend; this service applies the attempt lifecycle and grading rules on top of it.
// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			gateway.NewClient,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewTestAttemptRepository,
			repository.NewNotificationRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewScoreConverterService,
			service.NewGradingAggregator,
			service.NewResultPresenter,
			service.NewTestAttemptService,
			service.NewUserTestService,
			service.NewAdminTestService,
			func(repo repository.NotificationRepository, cfg *config.Config) *service.NotificationStoreRegistry {
				return service.NewNotificationStoreRegistry(repo, cfg.Notification.FetchLimit, cfg.Notification.SessionTTL)
			},
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminTestController,
			userctrl.NewUserTestController,
			notificationctrl.NewNotificationController,
		),

		fx.Invoke(logger.Apply),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(controller.RequestID())
	r.Use(controller.RequestLogger())
	r.Use(gin.Recovery())

	allowAll := len(cfg.Server.AllowedOrigins) == 0 || (len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*")
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", controller.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", controller.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutes mounts every API route on router.
func RegisterRoutes(
	router *gin.Engine,
	adminTestCtrl *adminctrl.AdminTestController,
	userTestCtrl *userctrl.UserTestController,
	notificationCtrl *notificationctrl.NotificationController,
) {
	api := router.Group("/api/v1", controller.BearerAuth())

	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := api.Group("/admin")
	{
		adminAPIGroup.GET("/tests/:test_id/attempts", adminTestCtrl.GetTestAttempts)
		adminAPIGroup.GET("/tests/:test_id/grading-queue", adminTestCtrl.GetGradingQueue)
		adminAPIGroup.GET("/tests/:test_id/summary", adminTestCtrl.GetResultsSummary)
		adminAPIGroup.POST("/attempts/:attempt_id/grade", adminTestCtrl.GradeAttempt)
	}

	// User Routes
	{
		api.GET("/tests/:test_id", userTestCtrl.GetTestDetails)
		api.POST("/tests/:test_id/attempts", userTestCtrl.StartAttempt)
		api.GET("/attempts/me", userTestCtrl.GetMyAttempts)
		api.POST("/attempts/:attempt_id/submit", userTestCtrl.SubmitAttempt)
		api.GET("/attempts/:attempt_id/result", userTestCtrl.GetAttemptResult)
	}

	// Session-scoped Routes
	sessionGroup := api.Group("", controller.RequireSession())
	{
		sessionGroup.GET("/notifications", notificationCtrl.GetNotifications)
		sessionGroup.POST("/notifications/refresh", notificationCtrl.RefreshNotifications)
		sessionGroup.PATCH("/notifications/read-all", notificationCtrl.MarkAllAsRead)
		sessionGroup.PATCH("/notifications/:id/read", notificationCtrl.MarkAsRead)
		sessionGroup.DELETE("/notifications/:id", notificationCtrl.DeleteNotification)
		sessionGroup.DELETE("/session", notificationCtrl.EndSession)
	}
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminTestCtrl *adminctrl.AdminTestController,
	userTestCtrl *userctrl.UserTestController,
	notificationCtrl *notificationctrl.NotificationController,
) {
	RegisterRoutes(router, adminTestCtrl, userTestCtrl, notificationCtrl)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Gradebook API server starting on port %s", cfg.Server.Port)
			log.Info().Str("backend", cfg.Backend.BaseURL).Msg("Forwarding to school-platform backend")
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
