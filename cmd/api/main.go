package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/wedloom/wedloom-api/internal/config"
	"github.com/wedloom/wedloom-api/internal/domain/admin"
	"github.com/wedloom/wedloom-api/internal/domain/allowlist"
	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/domain/gallery"
	"github.com/wedloom/wedloom-api/internal/domain/live"
	"github.com/wedloom/wedloom-api/internal/domain/page"
	"github.com/wedloom/wedloom-api/internal/domain/upload"
	"github.com/wedloom/wedloom-api/internal/middleware"
	"github.com/wedloom/wedloom-api/internal/pkg/database"
	"github.com/wedloom/wedloom-api/internal/pkg/jwt"
	"github.com/wedloom/wedloom-api/internal/pkg/logger"
	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
	"github.com/wedloom/wedloom-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("media_backend", cfg.MediaBackend).
		Msg("Starting Wedloom API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	store := newMediaStore(cfg)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	eventRepo := event.NewRepository(db)
	allowlistRepo := allowlist.NewRepository(db)

	// ---------- WebSocket hub ----------
	liveHub := live.NewHub(redis)
	go liveHub.Run()
	defer liveHub.Shutdown()

	// ---------- Services ----------
	eventService := event.NewService(eventRepo)
	galleryService := gallery.NewService(eventService, store)
	uploadLimiter := upload.NewLimiter(redis, cfg.UploadRatePerMinute)
	uploadService := upload.NewService(eventService, store, uploadLimiter, liveHub)

	pageRenderer, err := page.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse page templates")
	}

	// ---------- Handlers ----------
	eventHandler := event.NewHandler(eventService)
	galleryHandler := gallery.NewHandler(galleryService)
	uploadHandler := upload.NewHandler(uploadService)
	pageHandler := page.NewHandler(eventService, store, pageRenderer)
	liveHandler := live.NewHandler(eventService, liveHub, cfg.AllowedOrigins)
	adminHandler := admin.NewHandler(cfg.AdminPasswordHash, jwtService, allowlistRepo)

	authMiddleware := middleware.Auth(jwtService)
	adminOnly := middleware.RequireAdmin()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Rendered event pages and the live slideshow stay outside the API
	// prefix; they are what guests open from the invitation QR code.
	r.Mount("/e", pageHandler.Routes())
	r.Mount("/live", liveHandler.Routes())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/events", eventHandler.Routes())
		r.Mount("/photos", galleryHandler.Routes())
		r.Mount("/uploads", uploadHandler.Routes())
		r.Mount("/admin", adminHandler.Routes(authMiddleware, adminOnly))
		r.Mount("/admin/events", eventHandler.AdminRoutes(authMiddleware, adminOnly))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newMediaStore(cfg *config.Config) mediastore.Store {
	switch cfg.MediaBackend {
	case "s3":
		store, err := mediastore.NewS3Store(mediastore.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 media store")
		}
		return store
	case "cloudinary":
		return mediastore.NewCloudinary(mediastore.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			BaseURL:   cfg.CloudinaryBaseURL,
		})
	default:
		log.Fatal().Str("backend", cfg.MediaBackend).Msg("Unknown media backend")
		return nil
	}
}
