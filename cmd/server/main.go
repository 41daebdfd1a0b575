package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"gorm.io/gorm"

	"github.com/fieldlink/interactions-api/internal/config"
	"github.com/fieldlink/interactions-api/internal/database"
	"github.com/fieldlink/interactions-api/internal/handlers"
	"github.com/fieldlink/interactions-api/internal/middleware"
	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/utils"

	_ "github.com/fieldlink/interactions-api/docs/api" // Swagger docs
)

// @title Field Interactions API
// @version 1.0.0
// @description Back-office API for field representative activity tracking
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/fieldlink/interactions-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Authorizer; sessions cannot validate without it
	if err := services.InitAuthorizer(cfg, "http", "localhost:"+cfg.Port); err != nil {
		log.Printf("Authorizer init deferred: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("interactions-api")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health endpoint (no auth)
	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// API routes under /api, all behind session auth
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Use(middleware.AuthUser(db))

	planHandler := &handlers.PlanHandler{DB: db}
	hcpHandler := &handlers.HCPHandler{DB: db}
	interactionHandler := &handlers.InteractionHandler{DB: db}
	commentHandler := &handlers.CommentHandler{DB: db}
	userHandler := &handlers.UserHandler{DB: db}

	// Engagement plan routes
	api.Get("/engagement-plans", planHandler.ListPlans)
	api.Post("/engagement-plans", planHandler.CreatePlan)
	api.Get("/engagement-plans/:id", planHandler.GetPlan)
	api.Put("/engagement-plans/:id", planHandler.UpdatePlan)
	api.Patch("/engagement-plans/:id", planHandler.UpdatePlan)
	api.Delete("/engagement-plans/:id", planHandler.DeletePlan)
	api.Post("/engagement-plans/:id/approve", planHandler.ApprovePlan)
	api.Post("/engagement-plans/:id/unapprove", planHandler.UnapprovePlan)

	// HCP routes
	api.Get("/hcps", hcpHandler.ListHCPs)
	api.Post("/hcps", hcpHandler.CreateHCP)
	api.Get("/hcps/:id", hcpHandler.GetHCP)
	api.Put("/hcps/:id", hcpHandler.UpdateHCP)
	api.Delete("/hcps/:id", hcpHandler.DeleteHCP)
	api.Get("/hcp-objectives", hcpHandler.ListHCPObjectives)

	// Interaction routes
	api.Get("/interactions", interactionHandler.ListInteractions)
	api.Post("/interactions", interactionHandler.CreateInteraction)
	api.Get("/interactions/:id", interactionHandler.GetInteraction)

	// Comment routes
	api.Get("/comments", commentHandler.ListComments)
	api.Post("/comments", commentHandler.CreateComment)
	api.Delete("/comments/:id", commentHandler.DeleteComment)

	// Current user
	api.Get("/users/me", userHandler.Me)

	// Reference data routes
	registerReferenceRoutes(api, db)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// registerReferenceRoutes mounts CRUD for the flat reference kinds.
func registerReferenceRoutes(api fiber.Router, db *gorm.DB) {
	(&handlers.ReferenceHandler[models.AffiliateGroup]{DB: db, Kind: "affiliate group"}).
		Register(api, "/affiliate-groups")
	(&handlers.ReferenceHandler[models.TherapeuticArea]{DB: db, Kind: "therapeutic area"}).
		Register(api, "/therapeutic-areas")
	(&handlers.ReferenceHandler[models.InteractionOutcome]{DB: db, Kind: "interaction outcome"}).
		Register(api, "/interaction-outcomes")
	(&handlers.ReferenceHandler[models.Project]{
		DB: db, Kind: "project",
		Preloads:   []string{"AffiliateGroups", "TherapeuticAreas"},
		Joins:      &services.ProjectJoins,
		TypeFilter: true,
	}).Register(api, "/projects")
	(&handlers.ReferenceHandler[models.Resource]{
		DB: db, Kind: "resource",
		Preloads: []string{"AffiliateGroups", "TherapeuticAreas"},
		Joins:    &services.ResourceJoins,
	}).Register(api, "/resources")
	(&handlers.ReferenceHandler[models.BrandCriticalSuccessFactor]{
		DB: db, Kind: "brand critical success factor",
		Preloads: []string{"AffiliateGroups", "TherapeuticAreas"},
		Joins:    &services.BCSFJoins,
	}).Register(api, "/bcsfs")
	(&handlers.ReferenceHandler[models.MedicalPlanObjective]{
		DB: db, Kind: "medical plan objective",
		Preloads: []string{"AffiliateGroups", "TherapeuticAreas"},
		Joins:    &services.MPOJoins,
	}).Register(api, "/medical-plan-objectives")
}
