package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/config"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/flatlog"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/handlers"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/repository"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.UploadsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	// the relational store is a mirror, not a prerequisite: uploads, zone
	// drawing, and count logging keep working on the flat files without it
	var db *gorm.DB
	db, err = database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Printf("WARNING: relational store unavailable, continuing flat-file only: %v", err)
		db = nil
	} else if err := database.AutoMigrateModels(db); err != nil {
		log.Printf("WARNING: migration failed, continuing flat-file only: %v", err)
		db = nil
	}

	zoneFile, err := flatlog.NewJSONZoneFile(cfg.ZonesFilePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize zone file: %v", err)
	}
	countLog, err := flatlog.NewCSVCountLog(cfg.CountsLogPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize count ledger: %v", err)
	}

	userRepo := repository.NewGormUserRepository(db)
	videoRepo := repository.NewGormVideoRepository(db)
	zoneRepo := repository.NewGormZoneRepository(db)
	countRepo := repository.NewGormCountRepository(db)

	resolver := services.NewVideoResolver(videoRepo)
	telemetry := services.NewTelemetryService(resolver, zoneRepo, countRepo, zoneFile, countLog)

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	log.Printf("Storing uploads in: %s", cfg.UploadsPath)
	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Zone file: %s, count ledger: %s", cfg.ZonesFilePath, cfg.CountsLogPath)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)
	r.Use(handlers.SessionContext(sessionStore))

	authHandler := handlers.NewAuthHandler(userRepo, sessionStore)
	videoHandler := handlers.NewVideoHandler(videoRepo, cfg)
	telemetryHandler := handlers.NewTelemetryHandler(telemetry, zoneFile, countLog)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.CurrentUser)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Post("/", videoHandler.Upload)
			r.Get("/", handlers.RequireUser(videoHandler.ListMine))
			r.Route("/{video_id}", func(r chi.Router) {
				r.Get("/content", videoHandler.Content)
				r.Delete("/", handlers.RequireUser(videoHandler.Delete))
			})
		})

		r.Route("/zones", func(r chi.Router) {
			r.Post("/", telemetryHandler.SaveZones)
			r.Get("/export", telemetryHandler.ExportZones)
		})

		r.Route("/counts", func(r chi.Router) {
			r.Post("/", telemetryHandler.LogCounts)
			r.Get("/export", telemetryHandler.ExportCounts)
		})

		r.Get("/uploads/*", handlers.UploadServer(cfg.UploadsPath, "/api/uploads/"))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
