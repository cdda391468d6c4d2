package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/habitloop/habit-tracking-api/internal/config"
	"github.com/habitloop/habit-tracking-api/internal/constants"
	"github.com/habitloop/habit-tracking-api/internal/database"
	"github.com/habitloop/habit-tracking-api/internal/handlers"
	"github.com/habitloop/habit-tracking-api/internal/middleware"
	"github.com/habitloop/habit-tracking-api/internal/repository"
	"github.com/habitloop/habit-tracking-api/internal/services"
	"github.com/habitloop/habit-tracking-api/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Timezone used for "today" and the sync window
	loc := utils.LoadLocation(cfg.Timezone)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	dailyLogRepo := repository.NewDailyLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	motivationRepo := repository.NewMotivationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, notificationService)
	habitService := services.NewHabitService(habitRepo)
	sessionService := services.NewSessionService(sessionRepo, userRepo, notificationService)
	dailyLogService := services.NewDailyLogService(dailyLogRepo, sessionRepo, loc)
	motivationService := services.NewMotivationService(motivationRepo, reportRepo, cfg.OpenAIAPIKey)
	reportService := services.NewReportService(reportRepo, motivationService, loc)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	habitHandler := handlers.NewHabitHandler(habitService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	dailyLogHandler := handlers.NewDailyLogHandler(dailyLogService, loc)
	reportHandler := handlers.NewReportHandler(reportService, motivationService, loc)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Habit Tracking API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Habit master routes (protected)
		habits := api.Group("/habits")
		habits.Use(middleware.RequireAuth())
		{
			habits.GET("", habitHandler.ListHabits)
			habits.POST("", habitHandler.CreateHabit)
			habits.GET("/:id", habitHandler.GetHabit)
			habits.PATCH("/:id", habitHandler.UpdateHabit)
			habits.DELETE("/:id", habitHandler.DeleteHabit)
		}

		// Weekly session routes (protected)
		sessionsGroup := api.Group("/sessions")
		sessionsGroup.Use(middleware.RequireAuth())
		{
			sessionsGroup.GET("", sessionHandler.ListSessions)
			sessionsGroup.POST("", sessionHandler.CreateSession)
			sessionsGroup.PATCH("/:id", middleware.RequireSessionAccess(), sessionHandler.UpdateSession)
			sessionsGroup.DELETE("/:id", middleware.RequireSessionAccess(), sessionHandler.DeleteSession)
			sessionsGroup.POST("/:id/items", middleware.RequireSessionAccess(), sessionHandler.CreateItem)
		}

		// Session item routes (protected)
		items := api.Group("/session-items")
		items.Use(middleware.RequireAuth())
		{
			items.DELETE("/:id", sessionHandler.DeleteItem)
			items.POST("/:id/collaborators", sessionHandler.AddCollaborator)
			items.GET("/:id/group-progress", middleware.RequireItemAccess(), dailyLogHandler.GetGroupProgress)
		}

		// Collaborator invitation routes (protected)
		collaborators := api.Group("/collaborators")
		collaborators.Use(middleware.RequireAuth())
		{
			collaborators.PATCH("/:id", sessionHandler.UpdateCollaboratorStatus)
		}

		// Daily log routes (protected)
		dailyLogs := api.Group("/daily-logs")
		dailyLogs.Use(middleware.RequireAuth())
		{
			dailyLogs.GET("", dailyLogHandler.SyncDailyLogs)
			dailyLogs.GET("/list", dailyLogHandler.ListDailyLogs)
			dailyLogs.PATCH("/:id", dailyLogHandler.UpdateDailyLog)
			dailyLogs.DELETE("/:id", dailyLogHandler.DeleteDailyLog)
			dailyLogs.PATCH("/:id/progress", dailyLogHandler.UpdateProgress)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth())
		{
			reports.GET("/weekly-summary", reportHandler.GetWeeklySummary)
			reports.GET("/daily-summary", reportHandler.GetDailySummary)
		}

		// Motivation routes (protected)
		motivation := api.Group("/motivation")
		motivation.Use(middleware.RequireAuth())
		{
			motivation.GET("/daily-progress", reportHandler.GetDailyProgress)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
