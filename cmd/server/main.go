package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nutrigood/nutrigood-backend/internal/api"
	"github.com/nutrigood/nutrigood-backend/internal/auth"
	"github.com/nutrigood/nutrigood-backend/internal/config"
	"github.com/nutrigood/nutrigood-backend/internal/database"
	"github.com/nutrigood/nutrigood-backend/internal/inference"
	"github.com/nutrigood/nutrigood-backend/internal/product"
	"github.com/nutrigood/nutrigood-backend/internal/upload"
	"github.com/nutrigood/nutrigood-backend/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	userRepo := user.NewRepository(db.Pool())
	productRepo := product.NewRepository(db.Pool())

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	authService := auth.NewService(userRepo, hasher, tokens)

	runner := inference.NewScriptRunner(cfg.InferenceCommand, cfg.InferenceScript,
		time.Duration(cfg.InferenceTimeout)*time.Second)
	gateway := upload.NewGateway(upload.NewPhotoStore(cfg.PhotoDir), userRepo, runner)

	router := api.NewRouter(api.RouterDeps{
		AuthService: authService,
		Tokens:      tokens,
		UserRepo:    userRepo,
		ProductRepo: productRepo,
		Gateway:     gateway,
		DBPinger:    db,
		Version:     cfg.Version,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting nutrigood server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
