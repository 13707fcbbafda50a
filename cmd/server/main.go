// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/courtsideapp/courtside/internal/api/courts"
	"github.com/courtsideapp/courtside/internal/api/reservations"
	"github.com/courtsideapp/courtside/internal/api/venues"
	"github.com/courtsideapp/courtside/internal/booking"
	"github.com/courtsideapp/courtside/internal/cache"
	"github.com/courtsideapp/courtside/internal/config"
	"github.com/courtsideapp/courtside/internal/db"
	"github.com/courtsideapp/courtside/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	var reservationCache *cache.ReservationCache
	if cfg.Redis.Addr != "" {
		reservationCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.CacheTTLDuration())
		defer reservationCache.Close()
	}

	bookingService := booking.NewService(database, reservationCache)

	reservations.InitHandlers(bookingService, reservationCache)
	courts.InitHandlers(bookingService)
	venues.InitHandlers(database.Queries, bookingService)

	var sched *scheduler.Service
	if cfg.Reminders.Enabled {
		sched, err = scheduler.New()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create scheduler")
		}
		if err := scheduler.RegisterReminderJob(sched, database, cfg.Reminders.HoursBefore); err != nil {
			log.Fatal().Err(err).Msg("Failed to register reminder job")
		}
		sched.Start()
	}

	server := newServer(cfg)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if sched != nil {
			if err := sched.Stop(); err != nil {
				log.Error().Err(err).Msg("Scheduler shutdown failed")
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
