package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "pet-health-assessment/internal/adapters/storage/postgres"
	rs "pet-health-assessment/internal/adapters/storage/redisstore"
	"pet-health-assessment/internal/config"
	"pet-health-assessment/internal/domain/wizard"
	"pet-health-assessment/internal/platform/logger"
	"pet-health-assessment/internal/router"

	"github.com/redis/go-redis/v9"
)

// @title Pet Health Assessment API
// @version 1.0
// @description Wizard de evaluación de salud de mascotas y planificador de nutrición.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	opts := router.Options{
		Logger:     log,
		SessionTTL: cfg.SessionTTL,
		Timings: &wizard.Timings{
			ProgressInterval: cfg.Processing.ProgressInterval,
			ProgressStep:     cfg.Processing.ProgressStep,
			StatusInterval:   cfg.Processing.StatusInterval,
			GraceDelay:       cfg.Processing.GraceDelay,
		},
	}

	// DB_DSN tiene prioridad; si falla, no arrancamos con otro storage en silencio.
	switch {
	case cfg.DB.DSN != "":
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = pg.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Error("postgres schema failed", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.DB = db
	case cfg.Redis.Addr != "":
		var rdb *redis.Client
		rdb, err = rs.Open(rs.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Error("redis open failed", map[string]any{"err": err})
			os.Exit(1)
		}
		defer rdb.Close()
		opts.Redis = rdb
	}

	r := router.NewRouter(opts)
	defer r.Close()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessionsLoop(ctx, r, log, cfg.SessionTTL)

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"err": err})
	}
}

// sweepSessionsLoop cada ttl/4 libera controllers sin uso y borra los snapshots vencidos.
// ttl<=0 => no corre.
func sweepSessionsLoop(ctx context.Context, r *router.Router, log logger.Logger, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.EvictIdle(ttl)
			if _, err := r.ExpireSessions(ctx, ttl); err != nil {
				log.Error("session sweep failed", map[string]any{"err": err})
			}
		}
	}
}
