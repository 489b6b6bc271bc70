package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "bookmarkapi/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"bookmarkapi/internal/auth"
	"bookmarkapi/internal/cache"
	"bookmarkapi/internal/config"
	"bookmarkapi/internal/db"
	"bookmarkapi/internal/handler"
	"bookmarkapi/internal/model"
	"bookmarkapi/internal/repository"
	"bookmarkapi/internal/router"
	"bookmarkapi/internal/service"
)

// @title Bookmark API
// @version 1.0
// @description Bookmark service with email/password sign up, sign in and bearer token authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("database init", "error", err)
		os.Exit(1)
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB, &model.User{}, &model.Bookmark{}); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Warn("redis unavailable, bookmark cache disabled until it recovers", "addr", cfg.RedisAddr, "error", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	bookmarkRepo := repository.NewBookmarkRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	hasher := auth.NewPasswordHasher(auth.HashParams{
		MemoryKiB:  cfg.Argon2MemoryKiB,
		Iterations: cfg.Argon2Iterations,
		Threads:    cfg.Argon2Threads,
	}, cfg.HashConcurrency)
	guard := auth.NewGuard(jwtService, logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService)
	userService := service.NewUserService(userRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, cacheClient, cfg.BookmarkCacheTTL)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(
		e,
		logger,
		guard,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewBookmarkHandler(bookmarkService),
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	logger.Info("swagger documentation available", "url", "http://"+swaggerHost+"/swagger/index.html")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
