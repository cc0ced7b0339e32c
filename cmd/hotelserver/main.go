/*
main.go - Application entry point

Starts the hotel engine HTTP server. Configuration comes from the
environment (HOTEL_* variables, optional .env file); see config/config.go.

STARTUP SEQUENCE:
  1. Load configuration
  2. Open the storage backend (flat files or SQLite)
  3. Build the engine and router
  4. Serve with graceful shutdown on SIGINT/SIGTERM

EXAMPLES:
  # Flat-file tables under ./data (default)
  ./hotelserver

  # SQLite backend
  HOTEL_BACKEND=sqlite HOTEL_DB_PATH=./hotel.db ./hotelserver
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-engine/api"
	"github.com/stayhub/hotel-engine/config"
	"github.com/stayhub/hotel-engine/engine"
	"github.com/stayhub/hotel-engine/hotel"
	"github.com/stayhub/hotel-engine/store/flatfile"
	"github.com/stayhub/hotel-engine/store/sqlite"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage failed")
	}
	defer closeStore()

	eng := engine.New(st, engine.WithLogger(log))
	router := api.NewRouter(api.NewHandler(eng), log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("backend", cfg.Backend).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

func openStore(cfg config.Config) (hotel.Store, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		st, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	default:
		st, err := flatfile.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	}
}
