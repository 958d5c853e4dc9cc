// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"docspace/internal/config"
	"docspace/internal/handlers"
	"docspace/internal/middleware"
	"docspace/internal/models"
	"docspace/internal/repositories"
	"docspace/internal/services/admin"
	"docspace/internal/services/application"
	"docspace/internal/services/auth"
	"docspace/internal/services/chat"
	"docspace/internal/services/dashboard"
	"docspace/internal/services/hospital"
	"docspace/internal/services/insight"
	"docspace/internal/services/job"
	"docspace/internal/services/mailer"
	"docspace/internal/services/news"
	"docspace/internal/services/notification"
	"docspace/internal/services/storage"
	"docspace/internal/services/user"
	"docspace/internal/services/verification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
// The insight service is built in main because its client needs a context;
// it may be nil when the model backend is not configured.
func SetupRoutes(app *fiber.App, db *gorm.DB, insightService insight.Service) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	hospitalRepo := repositories.NewHospitalRepository(repositories.DB)
	jobRepo := repositories.NewJobRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	emailTaskRepo := repositories.NewEmailTaskRepository(db)

	// External collaborators
	storageClient := storage.NewClient(
		config.GetEnv("SUPABASE_URL", ""),
		config.GetEnv("SUPABASE_SERVICE_KEY", ""),
	)
	registryClient := verification.NewRegistryClient(
		config.GetEnv("REGISTRY_SERVICE_URL", ""),
		verification.DefaultTaskTimeout,
	)
	ocrClient := verification.NewOCRClient(
		config.GetEnv("OCR_SERVICE_URL", ""),
		verification.DefaultTaskTimeout,
	)

	// Initialize auth service and handler
	authService := auth.NewService(userRepo)
	authHandler := handlers.NewAuthHandler(authService, userRepo)

	// Initialize services
	userService := user.NewService(userRepo)
	notificationService := notification.NewService(notificationRepo)
	mailService := mailer.NewService(emailTaskRepo, repositories.CacheService)
	jobService := job.NewService(jobRepo, hospitalRepo)
	applicationService := application.NewService(
		applicationRepo, jobRepo, hospitalRepo, notificationService, mailService,
	)
	chatService := chat.NewService(messageRepo, repositories.CacheService)
	newsService := news.NewService(config.GetEnv("WHO_FEED_URL", ""), repositories.CacheService)
	dashboardService := dashboard.NewService(
		userRepo, hospitalRepo, jobRepo, applicationRepo, notificationRepo,
	)

	documentBucket := config.GetEnv("DOCTOR_DOCS_BUCKET", "doctor-verification")
	verifierService := verification.NewService(
		userRepo, storageClient, registryClient, ocrClient,
		verification.Config{DocumentBucket: documentBucket},
	)
	submissionService := verification.NewSubmissionService(userRepo, storageClient, documentBucket)
	hospitalService := hospital.NewService(hospitalRepo, storageClient, ocrClient, insightService)
	adminService := admin.NewService(userRepo, hospitalRepo, notificationService)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	verificationHandler := handlers.NewVerificationHandler(submissionService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)
	adminHandler := handlers.NewAdminHandler(adminService, verifierService, submissionService, hospitalService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	messageHandler := handlers.NewMessageHandler(chatService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	newsHandler := handlers.NewNewsHandler(newsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/signup", authHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/search", userHandler.SearchProfiles)
	api.Get("/profiles/:id", userHandler.GetPublicProfile)
	api.Get("/jobs", jobHandler.ListJobs)
	api.Get("/jobs/:id", jobHandler.GetJob)
	api.Get("/who/updates", newsHandler.WHOUpdates)

	app.Get("/health", handlers.HealthCheck)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to DocSpace API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	// Create middleware instance
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Protected routes with auth middleware
	protected := api.Use(authMiddleware.Handler)

	setupUserRoutes(protected, authHandler, userHandler, verificationHandler, dashboardHandler)
	setupHospitalRoutes(protected, hospitalHandler, jobHandler, applicationHandler)
	setupJobRoutes(protected, applicationHandler)
	setupChatRoutes(protected, messageHandler, notificationHandler)
	setupAdminRoutes(app, authMiddleware, adminHandler)
}

func setupUserRoutes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	verificationHandler *handlers.VerificationHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	router.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)
	router.Post("/logout", authHandler.LogoutUser)

	router.Get("/medical-resume", middleware.HasPermission(models.PermissionProfileRead), userHandler.GetMedicalResume)
	router.Put("/medical-resume", middleware.HasPermission(models.PermissionProfileWrite), userHandler.UpdateMedicalResume)

	router.Get("/dashboard", dashboardHandler.GetDashboard)

	// Doctor verification
	verif := router.Group("/verification", middleware.HasPermission(models.PermissionVerificationSubmit))
	verif.Post("/documents/:kind", verificationHandler.UploadDocument)
	verif.Post("/submit", verificationHandler.Submit)
	verif.Get("/status", verificationHandler.Status)
}

func setupHospitalRoutes(
	router fiber.Router,
	hospitalHandler *handlers.HospitalHandler,
	jobHandler *handlers.JobHandler,
	applicationHandler *handlers.ApplicationHandler,
) {
	hosp := router.Group("/hospital", middleware.RequireRole("hospital"))

	hosp.Post("/profile", hospitalHandler.SaveProfile)
	hosp.Get("/profile", hospitalHandler.GetProfile)
	hosp.Post("/documents/:type", hospitalHandler.UploadDocument)
	hosp.Post("/send-for-verification", hospitalHandler.SendForVerification)
	hosp.Get("/verification-status", hospitalHandler.VerificationStatus)

	hosp.Post("/jobs", middleware.HasPermission(models.PermissionJobWrite), jobHandler.PostJob)
	hosp.Get("/jobs", jobHandler.ListMyJobTitles)
	hosp.Put("/jobs/:id", middleware.HasPermission(models.PermissionJobWrite), jobHandler.UpdateJob)
	hosp.Post("/jobs/:id/close", middleware.HasPermission(models.PermissionJobWrite), jobHandler.CloseJob)
	hosp.Get("/jobs/:id/applications", applicationHandler.ListForJob)
	hosp.Post("/applications/:id/approve", applicationHandler.Approve)
	hosp.Post("/applications/:id/reject", applicationHandler.Reject)
}

func setupJobRoutes(router fiber.Router, applicationHandler *handlers.ApplicationHandler) {
	router.Post("/jobs/:id/apply", middleware.HasPermission(models.PermissionJobApply), applicationHandler.Apply)
	router.Get("/applications", applicationHandler.ListMine)
}

func setupChatRoutes(
	router fiber.Router,
	messageHandler *handlers.MessageHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	messages := router.Group("/messages", middleware.HasPermission(models.PermissionChatRead))
	messages.Post("/", middleware.HasPermission(models.PermissionChatWrite), messageHandler.SendMessage)
	messages.Get("/:userId", messageHandler.GetConversation)

	notifications := router.Group("/notifications")
	notifications.Get("/", notificationHandler.ListNotifications)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, adminHandler *handlers.AdminHandler) {
	adminGroup := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	adminGroup.Get("/verifications", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.PendingVerifications)
	adminGroup.Get("/verifications/:userId/documents", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.UserDocuments)
	adminGroup.Post("/verifications/:userId/action", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.ReviewVerification)
	adminGroup.Post("/verifications/:userId/ai-check", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.AICheck)

	adminGroup.Get("/hospitals", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.PendingHospitals)
	adminGroup.Get("/hospitals/:hospitalId", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.HospitalProfile)
	adminGroup.Get("/hospitals/:hospitalId/documents", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.HospitalDocuments)
	adminGroup.Get("/hospitals/:hospitalId/documents/:type/insights", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.HospitalDocumentInsights)
	adminGroup.Post("/hospitals/:hospitalId/action", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.ReviewHospital)
}
