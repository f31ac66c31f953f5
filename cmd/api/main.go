package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshbite/shop/internal/cache"
	"github.com/freshbite/shop/internal/config"
	"github.com/freshbite/shop/internal/db"
	httpx "github.com/freshbite/shop/internal/http"
	"github.com/freshbite/shop/internal/observability"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		// configuration failures are fatal before anything else starts
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	// tracing is optional; without an endpoint the service just runs untraced
	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "freshbite-api", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
		}
	}

	// database

	migrateCtx, cancelMigrate := config.WithTimeout(30 * time.Second)
	err = db.RunMigrations(migrateCtx, cfg.DBURL)
	cancelMigrate()

	if err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	if cfg.SeedCatalog {
		seedCtx, cancelSeed := config.WithTimeout(10 * time.Second)
		err = db.SeedCatalog(seedCtx, pool)
		cancelSeed()

		if err != nil {
			log.Error("catalog seed failed", "err", err)
			os.Exit(1)
		}
	}

	// catalog cache: shared redis when configured, in-process otherwise

	var cacheStore cache.Store

	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})

		pingCtx, cancelPing := config.WithTimeout(2 * time.Second)
		err = redisCache.Ping(pingCtx)
		cancelPing()

		if err != nil {
			log.Error("redis unreachable, falling back to in-process cache", "err", err)
			cacheStore = cache.NewMemory(cfg.CacheTTL)
		} else {
			defer redisCache.Close()
			cacheStore = redisCache
		}
	} else {
		cacheStore = cache.NewMemory(cfg.CacheTTL)
	}

	router := httpx.NewRouter(log, pool, cacheStore, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
