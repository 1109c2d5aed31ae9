package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamJABASTIN/attendance-tracker/internal/auth"
	"github.com/iamJABASTIN/attendance-tracker/internal/config"
	"github.com/iamJABASTIN/attendance-tracker/internal/logger"
	"github.com/iamJABASTIN/attendance-tracker/internal/record"
	"github.com/iamJABASTIN/attendance-tracker/internal/store"
	"github.com/iamJABASTIN/attendance-tracker/internal/user"
	"github.com/iamJABASTIN/attendance-tracker/internal/web"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db not reachable")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	var (
		sessions auth.SessionStore
		redis    *store.Redis
	)
	if cfg.SessionBackend == "redis" {
		redis = store.NewRedis(cfg.RedisAddr)
		sessions = auth.NewRedisStore(redis.Client)
	} else {
		sessions = auth.NewMemoryStore()
	}

	records := record.NewService(record.NewRepository(db.Client))
	authSvc := auth.NewService(user.NewRepository(db.Client), sessions, auth.Config{
		SigningKey:             cfg.SessionSigningKey,
		Issuer:                 cfg.SessionIssuer,
		SessionTTL:             cfg.SessionTTL,
		BcryptCost:             cfg.BcryptCost,
		BootstrapAdminPassword: cfg.BootstrapAdminPassword,
	})

	if u, created, err := authSvc.BootstrapAdmin(context.Background()); err != nil {
		log.Error().Err(err).Msg("admin bootstrap failed")
	} else if created {
		log.Info().Str("username", u.Username).Msg("bootstrap admin created; change its password")
	}

	server := web.New(records, authSvc, db, redis, log, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      server.Engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
