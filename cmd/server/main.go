package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/gss-portal/internal/config"
	"github.com/localnerve/gss-portal/internal/database"
	"github.com/localnerve/gss-portal/internal/handlers"
	"github.com/localnerve/gss-portal/internal/middleware"
	"github.com/localnerve/gss-portal/internal/services"
	"github.com/localnerve/gss-portal/internal/types"

	_ "github.com/localnerve/gss-portal/docs/api" // Swagger docs
)

// @title GSS Portal API
// @version 1.0.0
// @description Scholarship-application management data service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/gss-portal
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

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

	// Shared collaborators
	store := services.NewLocalDocumentStore(cfg.MediaRoot, cfg.MediaBaseURL, cfg.MediaSigningSecret)
	reader := services.GormPaymentReader{DB: db}

	var dispatcher services.Dispatcher
	if cfg.NotifyURL != "" {
		dispatcher = services.NewHTTPDispatcher(cfg.NotifyURL, cfg.NotifyAPIKey)
	} else {
		log.Printf("NOTIFY_URL not set, using console event dispatcher")
		dispatcher = services.ConsoleDispatcher{}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("gss-portal")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	publicHandler := &handlers.PublicHandler{DB: db, Cfg: cfg, Store: store}
	appHandler := &handlers.ApplicationHandler{DB: db, Reader: reader, Store: store}
	legacyHandler := &handlers.LegacyHandler{DB: db, Dispatcher: dispatcher}
	officerHandler := &handlers.OfficerHandler{
		DB:           db,
		Reader:       reader,
		Store:        store,
		Dispatcher:   dispatcher,
		SignedURLTTL: cfg.SignedURLTTL,
	}
	adminHandler := &handlers.AdminHandler{DB: db, Dispatcher: dispatcher}

	// Signed document retrieval, outside /api
	app.Get("/media/*", publicHandler.ServeDocument)

	// API routes under /api
	api := app.Group("/api")

	// Public routes
	api.Get("/health", publicHandler.Health)
	api.Get("/institutions", publicHandler.ListInstitutions)
	api.Get("/institutions/:id/courses", publicHandler.ListCourses)
	api.Get("/config/status", publicHandler.WindowStatus)

	// Applicant routes; submissions and edits gate on the application window
	api.Post("/applications", middleware.AuthApplicant(cfg), middleware.ApplicationWindow(db), appHandler.SubmitApplication)
	api.Get("/applications", middleware.AuthApplicant(cfg), appHandler.ListApplications)
	api.Put("/applications/:id", middleware.AuthApplicant(cfg), middleware.ApplicationWindow(db), appHandler.EditApplication)
	api.Post("/applications/:id/documents", middleware.AuthApplicant(cfg), middleware.ApplicationWindow(db), appHandler.UploadDocument)
	api.Post("/legacy/lookup", middleware.AuthApplicant(cfg), legacyHandler.Lookup)
	api.Post("/legacy/:id/confirm", middleware.AuthApplicant(cfg), middleware.ApplicationWindow(db), legacyHandler.Confirm)

	// Officer routes
	api.Get("/officer/applications", middleware.AuthOfficer(cfg), officerHandler.ListApplications)
	api.Get("/officer/applications/:id", middleware.AuthOfficer(cfg), officerHandler.GetApplication)
	api.Get("/officer/dashboard", middleware.AuthOfficer(cfg), officerHandler.Dashboard)
	api.Post("/applications/:id/status", middleware.AuthOfficer(cfg), officerHandler.SetStatus)
	api.Post("/applications/:id/reviews", middleware.AuthOfficer(cfg), officerHandler.PostReview)
	api.Get("/documents/*", middleware.AuthOfficer(cfg), officerHandler.GetDocument)

	// Staff routes
	api.Post("/applications/:id/continue", middleware.AuthStaff(cfg), adminHandler.StartContinuation)
	api.Post("/applications/:id/advance", middleware.AuthStaff(cfg), adminHandler.AdvanceYear)
	api.Post("/applications/:id/passout", middleware.AuthStaff(cfg), adminHandler.MarkPassout)
	api.Get("/admin/config", middleware.AuthStaff(cfg), adminHandler.GetConfig)
	api.Put("/admin/config", middleware.AuthStaff(cfg), adminHandler.UpdateConfig)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Initialize Authorizer on first authenticated request
	log.Printf("Authorizer will be initialized on first authenticated request")

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

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Typed errors raised by middleware carry their own code and type
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
