// Package main is the entry point for the online store API server.
//
// @title Online Store API
// @version 1.0
// @description Catalog browsing, ratings and reviews, shopping cart and JWT authentication.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/urfave/cli/v2"

	"github.com/user/onlinestore/apperror"
	"github.com/user/onlinestore/auth"
	"github.com/user/onlinestore/cart"
	"github.com/user/onlinestore/catalog"
	"github.com/user/onlinestore/config"
	"github.com/user/onlinestore/db"
	_ "github.com/user/onlinestore/docs" // Swagger docs
	"github.com/user/onlinestore/ratelimit"
	"github.com/user/onlinestore/render"
	"github.com/user/onlinestore/users"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found or error loading it", "err", err)
	}

	app := &cli.App{
		Name:  "onlinestore",
		Usage: "online store API server",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "manage database migrations",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply all pending migrations",
						Action: migrateUp,
					},
					{
						Name:  "down",
						Usage: "roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
						},
						Action: migrateDown,
					},
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application failed", "err", err)
		os.Exit(1)
	}
}

func initLogger(level slog.Leveler) {
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, apperror.NewConfigError("failed to load config", err)
	}
	initLogger(cfg.Server.LogLevel)
	return cfg, nil
}

func migrateUp(*cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return db.RunMigrations(cfg.DB, cfg.MigrationsPath)
}

func migrateDown(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return db.RollbackMigrations(cfg.DB, cfg.MigrationsPath, c.Int("steps"))
}

func serve(c *cli.Context) error {
	const op = "main.serve"

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := db.RunMigrations(cfg.DB, cfg.MigrationsPath); err != nil {
		return err
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	readDB := db.NewReadDB(pool)
	defer readDB.Close()

	var loginLimit func(http.Handler) http.Handler
	if cfg.RateLimit.RedisAddr != "" {
		client, err := ratelimit.NewRedisClient(c.Context, cfg.RateLimit.RedisAddr)
		if err != nil {
			// Throttling is optional; the API keeps working without Redis.
			slog.Warn("login throttling disabled", "op", op, "err", err)
		} else {
			defer func(client *redis.Client) { _ = client.Close() }(client)
			limiter := ratelimit.NewLimiter(ratelimit.NewRedisCounter(client), "login",
				cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
			loginLimit = limiter.Middleware
		}
	}

	tokens := auth.NewJWTIssuer(cfg.Auth)
	authHandlers := auth.NewHandlers(auth.NewService(auth.NewPgStore(pool), tokens))
	userHandlers := users.NewUserHandlers(users.NewService(users.NewPgStore(pool)))
	catalogService := catalog.NewService(catalog.NewSQLStore(readDB, pool))
	catalogHandlers := catalog.NewHandlers(catalogService)
	cartHandlers := cart.NewHandlers(cart.NewService(cart.NewPgStore(pool), catalogService))

	requireAuth := auth.JWTMiddleware(tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, r, apperror.NewNotFoundError("resource not found", nil))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authHandlers.RegisterRoutes(r, loginLimit)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			userHandlers.RegisterRoutes(r)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(requireAuth)
			cartHandlers.RegisterRoutes(r)
		})

		catalogHandlers.RegisterRoutes(r, requireAuth)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "op", op, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case <-quit:
	}

	slog.Info("server shutting down", "op", op)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: shutdown: %w", op, err)
	}
	slog.Info("server stopped gracefully", "op", op)
	return nil
}
