// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"time"

	"docspace/internal/config"
	"docspace/internal/repositories"
	"docspace/internal/routes"
	"docspace/internal/services/insight"
	"docspace/internal/services/mailer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Initializes database connection
// - Starts the email delivery worker
// - Configures routes
// - Starts the HTTP server
func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour))
	sqlDB.SetConnMaxIdleTime(config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute))

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("✅ Successfully connected to database with connection pooling")

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("⚠️ Failed to close database connection: %v", err)
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Insight model client. Optional; the document insight endpoints return
	// 503 when it is not configured.
	var insightService insight.Service
	projectID := config.GetEnv("GCP_PROJECT_ID", "")
	if projectID != "" {
		insightService, err = insight.NewService(ctx,
			projectID,
			config.GetEnv("GCP_REGION", "us-central1"),
			config.GetEnv("INSIGHT_MODEL", "gemini-1.5-flash-002"),
		)
		if err != nil {
			log.Printf("⚠️ Insight model unavailable: %v", err)
			insightService = nil
		} else {
			defer insightService.Close()
		}
	} else {
		log.Println("⚠️ GCP_PROJECT_ID not set, document insights disabled")
	}

	// Email delivery worker. Requeue tasks stranded by a previous crash,
	// then drain the queue until shutdown.
	emailTasks := repositories.NewEmailTaskRepository(repositories.DB)
	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host: config.GetEnv("SMTP_HOST", "localhost"),
		Port: config.GetEnv("SMTP_PORT", "587"),
		User: config.GetEnv("SMTP_USER", ""),
		Pass: config.GetEnv("SMTP_PASS", ""),
		From: config.GetEnv("SMTP_FROM", "no-reply@docspace.io"),
	})
	worker := mailer.NewWorker(emailTasks, repositories.CacheService, sender)
	worker.RequeueStuck(ctx)
	go worker.Run(ctx)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGIN", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/signup", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(429).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	// Routes
	routes.SetupRoutes(app, repositories.DB, insightService)

	// Start server
	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
