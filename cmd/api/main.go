package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medbook/clinic-api/internal/config"
	adminHandler "github.com/medbook/clinic-api/internal/handler/admin"
	authHandler "github.com/medbook/clinic-api/internal/handler/auth"
	bookingHandler "github.com/medbook/clinic-api/internal/handler/booking"
	doctorHandler "github.com/medbook/clinic-api/internal/handler/doctor"
	healthHandler "github.com/medbook/clinic-api/internal/handler/health"
	"github.com/medbook/clinic-api/internal/middleware"
	"github.com/medbook/clinic-api/internal/repository/postgres"
	"github.com/medbook/clinic-api/internal/router"
	adminService "github.com/medbook/clinic-api/internal/service/admin"
	authService "github.com/medbook/clinic-api/internal/service/auth"
	bookingService "github.com/medbook/clinic-api/internal/service/booking"
	"github.com/medbook/clinic-api/internal/token"
	"github.com/medbook/clinic-api/pkg/auth"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())

	var revoker token.Revoker
	if cfg.Redis.URL != "" {
		revoker, err = token.NewRedisRevoker(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	} else {
		log.Info().Msg("no redis url configured, using in-process token revocation")
		revoker = token.NewMemoryRevoker()
	}

	authSvc := authService.NewService(userRepo, doctorRepo, patientRepo, jwtSvc, revoker)
	bookingSvc := bookingService.NewService(appointmentRepo, doctorRepo, patientRepo)
	adminSvc := adminService.NewService(userRepo, doctorRepo, patientRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	cookieMaxAge := int(cfg.JWT.Expiry() / time.Second)
	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc, cookieMaxAge),
		bookingHandler.NewHandler(bookingSvc),
		doctorHandler.NewHandler(bookingSvc),
		adminHandler.NewHandler(adminSvc),
		healthHandler.NewHandler(db),
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimitRPS:     cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst:   cfg.RateLimit.Burst,
			CORSConfig:       corsConfig,
			MetricsPrefix:    "clinic_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
