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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/playzone/playzone-api/internal/config"
	"github.com/playzone/playzone-api/internal/domain/availability"
	"github.com/playzone/playzone-api/internal/domain/booking"
	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/domain/pricing"
	"github.com/playzone/playzone-api/internal/middleware"
	"github.com/playzone/playzone-api/internal/pkg/database"
	pkgresponse "github.com/playzone/playzone-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting PlayZone API")

	loc, err := time.LoadLocation(cfg.VenueTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.VenueTimezone).Msg("Invalid venue timezone")
	}

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

	// ---------- Repositories ----------
	branchRepo := branch.NewRepository(db, branch.Defaults{
		SlotStepMinutes:       cfg.SlotStepMinutes,
		InterGamePauseMinutes: cfg.InterGamePauseMinutes,
	})
	availabilityRepo := availability.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	// ---------- Services ----------
	branchService := branch.NewService(branchRepo, redis)
	engine := availability.NewEngine(loc, nil)
	availabilityService := availability.NewService(engine, availabilityRepo, branchService, loc)
	bookingService := booking.NewService(bookingRepo, availabilityRepo, branchService, engine, loc)
	pricingService := pricing.NewService(branchService)

	// ---------- Handlers ----------
	branchHandler := branch.NewHandler(branchService)
	availabilityHandler := availability.NewHandler(availabilityService)
	bookingHandler := booking.NewHandler(bookingService)
	pricingHandler := pricing.NewHandler(pricingService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/availability", availabilityHandler.Routes())
		r.Mount("/bookings", bookingHandler.Routes())
		r.Mount("/pricing", pricingHandler.Routes())
		r.Mount("/branches", branchHandler.Routes())
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

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
