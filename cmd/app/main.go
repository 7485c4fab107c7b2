package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"todo_webapp/internal/config"
	"todo_webapp/internal/db"
	httpServer "todo_webapp/internal/http"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/repository/memory"
	"todo_webapp/internal/service"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	gin.SetMode(cfg.GinMode)

	var (
		store  repository.TodoStore
		dbPool *pgxpool.Pool
	)
	if cfg.UseMemoryStore() {
		logger.Warn("DATABASE_URL is not set, todos are kept in memory only")
		store = memory.NewRepository()
	} else {
		dbPool = db.Connect(cfg.DatabaseURL)
		defer dbPool.Close()

		if err := db.EnsureSchema(context.Background(), dbPool); err != nil {
			logger.Fatal("failed to ensure schema", "error", err)
		}
		store = repository.NewTodoRepository(dbPool)
	}

	redisClient := middleware.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient != nil {
		defer redisClient.Close()
	}

	hub := ws.NewHub()
	todos := service.NewTodoService(store, hub)

	r := httpServer.NewEngine(httpServer.Deps{
		Config: cfg,
		Todos:  todos,
		Hub:    hub,
		DB:     dbPool,
		Redis:  redisClient,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// websocket connections are hijacked and not tracked by Shutdown
	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
