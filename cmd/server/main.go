package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mreiter/accountd/internal/auth"
	"github.com/mreiter/accountd/internal/config"
	"github.com/mreiter/accountd/internal/database"
	"github.com/mreiter/accountd/internal/handlers"
	"github.com/mreiter/accountd/internal/logging"
	"github.com/mreiter/accountd/internal/middleware"
	"github.com/mreiter/accountd/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	// Load configuration; missing required values abort startup.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("Starting account service...")

	// Connect to PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations before accepting traffic
	migrator, err := database.NewMigrator(cfg.Database.URL, cfg.Database.MigrationsPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Run(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	logger.Info("Migrations completed")

	// Connect to Redis
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)
	hasher := auth.NewPasswordHasher()

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(userService, redisAdapter, hasher)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	userHandler := handlers.NewUserHandler(userService, authService)
	authHandler := handlers.NewAuthHandler(authService, cfg.Server.Secure)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	requestLogger := middleware.NewRequestLogger(logger)
	requireAuth := authMiddleware.RequireAuth

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// User endpoints
	mux.Handle("GET /users", requireAuth(http.HandlerFunc(userHandler.List)))
	mux.Handle("GET /users/{id}", requireAuth(http.HandlerFunc(userHandler.Get)))
	mux.HandleFunc("POST /users", userHandler.Create)
	mux.Handle("PUT /users/{id}", requireAuth(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /users/{id}", requireAuth(http.HandlerFunc(userHandler.Delete)))

	// Auth endpoints
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /sign-in", authHandler.SignIn)
	mux.Handle("POST /sign-out", requireAuth(http.HandlerFunc(authHandler.SignOut)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = requestLogger.Apply(handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": cfg.Server.Addr(),
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
