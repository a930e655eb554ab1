package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/monodeal/service/internal/cache"
	"github.com/jason-s-yu/monodeal/service/internal/config"
	"github.com/jason-s-yu/monodeal/service/internal/database"
	"github.com/jason-s-yu/monodeal/service/internal/game"
	"github.com/jason-s-yu/monodeal/service/internal/handlers"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.ConfigureLogging(); err != nil {
		log.Fatalf("configure logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.RedisAddr != "" {
		if err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			log.Warnf("Redis unavailable, action history and snapshots disabled: %v", err)
		} else {
			defer cache.Close()
		}
	}
	if cfg.DatabaseURL != "" {
		if err := database.ConnectDB(ctx, cfg.DatabaseURL); err != nil {
			log.Warnf("Postgres unavailable, results will not be archived: %v", err)
		} else {
			defer database.Close()
		}
	}

	h := handlers.NewHandler(game.NewGameStore(), cfg.HouseRules())
	h.SnapshotTTL = cfg.SnapshotTTL
	h.AllowedOrigins = cfg.AllowedOrigins
	if cfg.ShuffleSeed != nil {
		h.Seed = *cfg.ShuffleSeed
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Infof("Listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
