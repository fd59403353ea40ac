package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskops/docs"
	"taskops/internal/cache"
	"taskops/internal/config"
	"taskops/internal/handler"
	"taskops/internal/logger"
	"taskops/internal/repository"
	"taskops/internal/router"
	"taskops/internal/service"
)

// @title TaskOps API
// @version 1.0
// @description Users, tasks and activity reports over in-memory stores.
// @host localhost:3000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	defer func() { _ = log.Sync() }()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "taskops:")
	if cacheClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn("redis unreachable, report cache will miss", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	taskRepo := repository.NewTaskRepository()
	reportRepo := repository.NewReportRepository()

	// Initialize services
	userService := service.NewUserService(userRepo, log)
	taskService := service.NewTaskService(taskRepo, log)
	reportService := service.NewReportService(reportRepo, userRepo, taskRepo, cacheClient, cfg.ReportCacheTTL, log)

	var scheduler *service.SchedulerService
	if cfg.Scheduler.Enabled {
		scheduler = startScheduler(cfg.Scheduler, reportService, log)
	}

	// Initialize handlers
	handlers := router.Handlers{
		Health: handler.NewHealthHandler(cfg.Environment, !cfg.IsProduction()),
		User:   handler.NewUserHandler(userService, log),
		Task:   handler.NewTaskHandler(taskService, log),
		Report: handler.NewReportHandler(reportService, log),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, cfg, log, handlers)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	if !cfg.IsProduction() {
		log.Info("Swagger documentation available", zap.String("url", swaggerURL(cfg)))
	}

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", zap.String("addr", addr), zap.String("environment", cfg.Environment))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if scheduler != nil {
		scheduler.Stop()
	}
	if err := cacheClient.Close(); err != nil {
		log.Warn("redis close", zap.Error(err))
	}
	log.Info("server stopped")
}

func startScheduler(cfg config.SchedulerConfig, reports service.ReportService, log *zap.Logger) *service.SchedulerService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn("invalid REPORT_TIMEZONE, using local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	scheduler := service.NewSchedulerService(loc, log)
	if err := scheduler.ScheduleReports(reports, cfg.DailyAt, cfg.WeeklyAt); err != nil {
		log.Fatal("schedule reports", zap.Error(err))
	}
	scheduler.Start()
	log.Info("report scheduler started",
		zap.String("daily_at", cfg.DailyAt),
		zap.String("weekly_at", cfg.WeeklyAt),
		zap.String("timezone", loc.String()),
	)
	return scheduler
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/api-docs/index.html"
}
