// Command server runs the vendor management API.
//
// Startup order: load .env if present, build the configuration, configure
// logging, seed the in-process vendor store, optionally provision the
// dormant relational schema, then serve HTTP until SIGINT/SIGTERM and drain
// gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vendstack/vendor-api/internal/config"
	httpapi "github.com/vendstack/vendor-api/internal/http"
	"github.com/vendstack/vendor-api/internal/repo"
	"github.com/vendstack/vendor-api/internal/store"
	"github.com/vendstack/vendor-api/internal/sysutil"
)

func main() {
	// A missing .env is fine; the environment may be set by the runtime.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	// The active data path is the in-process store, reinitialized to its
	// seed data on every start.
	vendorStore := store.NewMemorySeeded()
	log.Info().Msg("using in-process vendor store")

	if cfg.ProvisionDB {
		if err := provisionSchema(cfg.DBPath); err != nil {
			log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("provisioning relational schema")
		}
		log.Info().Str("db_path", cfg.DBPath).Msg("relational schema provisioned (not used by the request path)")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, vendorStore, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// provisionSchema creates and seeds the dormant vendors/users/organizations
// tables. The request path never reads them.
func provisionSchema(path string) error {
	db, err := repo.Open(path)
	if err != nil {
		return err
	}
	if err := repo.Migrate(db); err != nil {
		return err
	}
	if err := repo.Seed(db); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		return sqlDB.Close()
	}
	return nil
}
