package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timecard-report/internal/api"
	"timecard-report/internal/config"
	"timecard-report/internal/database"
	"timecard-report/internal/services"
	"timecard-report/internal/utils"
)

const (
	taskRetention = time.Hour
	pruneInterval = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize upstream client and session tokens
	pontoClient := services.NewPontoClient(cfg.Upstream.AuthURL, cfg.Upstream.PontoURL, cfg.UpstreamTimeout())
	jwtService := services.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	// Initialize artifact storage
	storage, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.Storage.Backend, err)
	}

	// Closed on shutdown, in registration order
	var cleanups []func()

	// Initialize MongoDB client (optional - for export history)
	var history services.ExportHistory
	if cfg.MongoDBEnabled() {
		log.Printf("Initializing MongoDB connection (Host: %s, Port: %s, Database: %s)",
			cfg.MongoDB.Host, cfg.MongoDB.Port, cfg.MongoDB.Database)
		mongoClient, err := database.NewMongoDBClient(cfg.MongoDB)
		if err != nil {
			log.Printf("WARNING: Failed to connect to MongoDB (export history disabled): %v", err)
		} else {
			log.Printf("Successfully connected to MongoDB for export history")
			cleanups = append(cleanups, func() { _ = mongoClient.Close() })
			history = mongoClient
		}
	} else {
		log.Printf("MongoDB not configured (Host and URI are empty), export history disabled")
	}

	// Initialize InfluxDB metrics (optional)
	var metrics services.MetricsRecorder
	if cfg.InfluxDBEnabled() {
		metricsService, err := services.NewMetricsService(
			cfg.InfluxDB.URL,
			cfg.InfluxDB.Token,
			cfg.InfluxDB.Org,
			cfg.InfluxDB.Bucket,
		)
		if err != nil {
			log.Printf("WARNING: Failed to connect to InfluxDB (export metrics disabled): %v", err)
		} else {
			cleanups = append(cleanups, metricsService.Close)
			metrics = metricsService
		}
	} else {
		log.Printf("InfluxDB not configured, export metrics disabled")
	}

	// Initialize services
	reportService := services.NewReportService(pontoClient, services.NewExcelService(), services.NewPDFService())
	taskService := services.NewTaskService()
	exportService := services.NewExportService(reportService, taskService, storage, history, metrics)

	cleanups = append(cleanups, startTaskPruning(taskService))

	// Initialize handlers
	location := utils.LoadLocation(cfg.Server.Timezone)
	handlers := api.NewHandlers(pontoClient, pontoClient, jwtService, reportService, exportService, location)

	// Setup routes
	router := api.SetupRoutes(handlers, jwtService)

	setupGracefulShutdown(cleanups)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		runCleanups(cleanups)
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newStorage(cfg *config.Config) (services.StorageInterface, error) {
	if cfg.Storage.Backend == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return services.NewS3Service(ctx, &cfg.S3)
	}
	return services.NewStorageService(cfg.Storage.Path, cfg.Storage.BaseURL)
}

// startTaskPruning drops finished export tasks once they are older than
// taskRetention. The returned func stops the loop.
func startTaskPruning(tasks *services.TaskService) func() {
	ticker := time.NewTicker(pruneInterval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if removed := tasks.PruneFinished(taskRetention); removed > 0 {
					log.Printf("[EXPORT] Pruned %d finished tasks", removed)
				}
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

// setupGracefulShutdown handles cleanup on application termination
func setupGracefulShutdown(cleanups []func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down gracefully...")
		runCleanups(cleanups)
		os.Exit(0)
	}()
}

func runCleanups(cleanups []func()) {
	for _, cleanup := range cleanups {
		cleanup()
	}
}
