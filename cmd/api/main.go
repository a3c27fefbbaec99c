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

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	httpadapter "github.com/guipratiko/onlyhelper-back/internal/adapters/primary/http"
	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/http/middleware"
	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/websocket"
	"github.com/guipratiko/onlyhelper-back/internal/adapters/secondary/postgres"
	"github.com/guipratiko/onlyhelper-back/internal/auth"
	"github.com/guipratiko/onlyhelper-back/internal/config"
	"github.com/guipratiko/onlyhelper-back/internal/core/services"
	"github.com/guipratiko/onlyhelper-back/internal/infrastructure/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Environment, cfg.LogLevel)
	logger.Info("starting onlyhelper",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.Port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(cfg); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	ticketRepo := postgres.NewTicketRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	subjectRepo := postgres.NewSubjectRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	ticketService := services.NewTicketService(ticketRepo, userRepo, hub, logger)
	messageService := services.NewMessageService(messageRepo, ticketRepo, hub, logger, cfg.AttachmentMaxBytes)
	subjectService := services.NewSubjectService(subjectRepo, logger)
	authService := services.NewAuthService(userRepo, tokenManager, logger)
	userService := services.NewUserService(userRepo, logger)

	errorHandler := httpadapter.NewErrorHandler(logger)
	router := httpadapter.NewRouter(httpadapter.RouterDeps{
		Logger:         logger,
		Auth:           middleware.NewAuthMiddleware(tokenManager),
		AllowedOrigins: cfg.AllowedOrigins,

		Tickets:   httpadapter.NewTicketHandler(ticketService, errorHandler),
		Messages:  httpadapter.NewMessageHandler(messageService, errorHandler),
		Accounts:  httpadapter.NewAuthHandler(authService, errorHandler),
		Me:        httpadapter.NewMeHandler(userService, errorHandler),
		Subjects:  httpadapter.NewSubjectHandler(subjectService, errorHandler),
		Admin:     httpadapter.NewAdminHandler(userService, errorHandler),
		Health:    httpadapter.NewHealthHandler(pool),
		WebSocket: httpadapter.NewWebSocketHandler(hub, cfg.AllowedOrigins, logger),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("shutdown complete")
}

func runMigrations(cfg *config.Config) error {
	migrator, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
