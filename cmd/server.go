//go:build !integration

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/config"
	"bitbucket.org/crgw/rental-hub/internal/rental/factory"
	"bitbucket.org/crgw/rental-hub/internal/tools/logger"
	"bitbucket.org/crgw/rental-hub/internal/tools/redisfactory"
	"bitbucket.org/crgw/rental-hub/internal/web"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func serverApp(httpServer *http.Server, logger *zerolog.Logger) int {
	shutdown := false
	done := make(chan error, 1)
	stop := make(chan os.Signal, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		// Wait for stop
		<-stop
		shutdown = true
		logger.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	// Notify stop channel if SIGINT or SIGTERM is received
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	err := <-done
	if err != nil && err != http.ErrServerClosed && !shutdown {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)

	redisFactory := redisfactory.New(cfg.Sessions.RedisURI)

	rentalFactory, err := factory.NewFactory(cfg, redisFactory, log)
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	appRouter, err := web.SetupRouter(cfg, log, rentalFactory)
	if err != nil {
		log.Error().Err(err).Msg("Failed to set up router")
		os.Exit(1)
	}

	var host string
	if os.Getenv("TEST") == "true" {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", host, cfg.Port),
		Handler:           appRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	code := serverApp(httpServer, log)
	redisFactory.Close()
	os.Exit(code)
}
