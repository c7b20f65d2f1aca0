package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/heatguard/backend/internal/catalog"
	"github.com/heatguard/backend/internal/delivery/http"
	"github.com/heatguard/backend/internal/observability"
	"github.com/heatguard/backend/internal/repository/postgres"
	"github.com/heatguard/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	locations, err := catalog.DefaultLocations().WithDefault(cfg.DefaultLocation)
	if err != nil {
		log.Printf("Warning: %v, using %s", err, catalog.DefaultLocations().DefaultKey())
		locations = catalog.DefaultLocations()
	}

	// Database connection
	pool := connectDatabase(cfg.DatabaseURL)
	if pool != nil {
		defer pool.Close()
	}

	// Dependency Injection: Repositories
	var locationRepo service.LocationRepository
	if pool != nil {
		locationRepo = postgres.NewPostgresRepository(pool, locations)
	} else {
		locationRepo = postgres.NewStaticRepository(locations)
	}

	// Dependency Injection: Services
	recorder := observability.NewRecorder()
	dashboardSvc := service.NewDashboardService(locationRepo, recorder)
	forecastSvc := service.NewForecastService(locationRepo)
	sessions := service.NewSessionManager(locationRepo, recorder, service.SessionConfig{
		ClockInterval: cfg.ClockInterval,
		IdleTimeout:   cfg.SessionIdleTimeout,
	})

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "HeatGuard API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  2 * time.Minute,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, dashboardSvc, forecastSvc, sessions, recorder)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s (%s)", cfg.Port, cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	// closing sessions ends open event streams
	sessions.Shutdown()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

// connectDatabase returns nil when no database is configured or reachable
func connectDatabase(url string) *pgxpool.Pool {
	if url == "" {
		log.Println("DATABASE_URL not set, serving the compiled-in location catalog")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err == nil {
		err = pool.Ping(ctx)
		if err != nil {
			pool.Close()
		}
	}
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Serving the compiled-in location catalog")
		return nil
	}

	log.Println("Connected to PostgreSQL")
	return pool
}
