package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/freshbite/shop/internal/auth"
	"github.com/freshbite/shop/internal/cache"
	"github.com/freshbite/shop/internal/config"
	"github.com/freshbite/shop/internal/http/handlers"
	"github.com/freshbite/shop/internal/http/middlewares"
	"github.com/freshbite/shop/internal/observability"
	"github.com/freshbite/shop/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cacheStore cache.Store, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// per-router metrics registry so tests can build many routers
	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("freshbite-api"))
	r.Use(prom.GinHandleMiddleware())

	// health

	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// wire up repositories

	usersRepo := postgres.NewUsersRepo(pool)
	productsRepo := postgres.NewProductsRepo(pool)

	// token plumbing

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	authMiddleware := middlewares.NewAuthMiddleware(jwtManager)

	// brute-force protection on the credential endpoints
	limiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	limited := limiter.RateLimiterMiddleware(middlewares.KeyByIP)

	usersHandler := handlers.NewUsersHandler(usersRepo, jwtManager, prom)
	productsHandler := handlers.NewProductsHandler(productsRepo, cacheStore, prom)

	// account routes
	r.POST("/user/createUser", limited, usersHandler.Register)
	r.POST("/user/loginUser", limited, usersHandler.Login)
	r.GET("/user/getOneUser", authMiddleware.RequireAuth(), usersHandler.GetProfile)
	// NOTE: the update route trusts the path id as-is; see DESIGN.md on the
	// missing ownership check.
	r.PUT("/user/updateUser/:id", usersHandler.UpdateProfile)

	// catalog routes
	r.POST("/product/createproduct", productsHandler.CreateProduct)
	r.GET("/product/getallproducts", productsHandler.ListProducts)
	r.GET("/product/getone/:id", productsHandler.GetProductByID)

	return r
}
