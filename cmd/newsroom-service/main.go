package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-ai-newsroom/internal/newsroom/config"
	delivery "golang-ai-newsroom/internal/newsroom/delivery/http"
	_ "golang-ai-newsroom/internal/newsroom/docs"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/internal/newsroom/service"
	"golang-ai-newsroom/internal/newsroom/storage"
	"golang-ai-newsroom/pkg/logger"
	"golang-ai-newsroom/pkg/postgres"
	"golang-ai-newsroom/pkg/redis"
	"golang-ai-newsroom/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the newsroom service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Newsroom Service", logger.Field("name", cfg.App.Name))

	// Persistence backend. Postgres is also needed when only the audit sink
	// uses it.
	var store storage.Store
	var db *postgres.DB
	needPostgres := cfg.Storage.Backend == "postgres" || cfg.Audit.Sink == "postgres"
	if needPostgres {
		postgresCfg := postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}
		db, err = postgres.NewDB(postgresCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	switch cfg.Storage.Backend {
	case "postgres":
		store = storage.NewPostgresStore(db)
	default:
		redisCfg := redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}
		redisClient, err := redis.NewClient(redisCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		store = storage.NewRedisStore(redisClient)
	}

	// Repositories
	reporterRepo := repository.NewReporterRepository(store)
	articleRepo := repository.NewArticleRepository(store, reporterRepo)
	eventRepo := repository.NewEventRepository(store, reporterRepo)
	editionRepo := repository.NewEditionRepository(store)
	dailyEditionRepo := repository.NewDailyEditionRepository(store)
	editorRepo := repository.NewEditorRepository(store)
	adRepo := repository.NewAdRepository(store)
	userRepo := repository.NewUserRepository(store)
	usageRepo := repository.NewUsageRepository(store)
	kpiRepo := repository.NewKpiRepository(store)
	jobStatusRepo := repository.NewJobStatusRepository(store)

	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		aiRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
	default:
		aiRepo = repository.NewOpenAIRepository(cfg, appLogger)
	}

	var feedRepo repository.FeedRepository
	switch cfg.Feed.Source {
	case "rss":
		feedRepo = repository.NewRSSFeedRepository(cfg, appLogger)
	default:
		feedRepo, err = repository.NewBlueskyFeedRepository(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize feed repository", logger.ErrorField(err))
		}
	}

	var auditRepo repository.AuditRepository
	switch cfg.Audit.Sink {
	case "postgres":
		auditRepo = repository.NewPostgresAuditRepository(db)
	default:
		auditRepo, err = repository.NewFileAuditRepository(cfg.Audit.Dir)
		if err != nil {
			appLogger.Fatal("Failed to initialize audit repository", logger.ErrorField(err))
		}
	}

	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Services
	kpiSvc := service.NewKpiService(kpiRepo, usageRepo, editorRepo, appLogger)
	aiSvc := service.NewAIService(cfg, aiRepo, feedRepo, adRepo, editorRepo, userRepo, auditRepo, kpiSvc, appLogger)
	reporterSvc := service.NewReporterService(reporterRepo, articleRepo, eventRepo, aiSvc, appLogger)
	editorSvc := service.NewEditorService(editorRepo, reporterRepo, articleRepo, editionRepo, dailyEditionRepo, aiSvc, appLogger)
	schedulerSvc := service.NewSchedulerService(cfg, userRepo, editorRepo, jobStatusRepo, reporterSvc, editorSvc, notifier, appLogger)

	if cfg.Scheduler.Enabled {
		if err := schedulerSvc.Start(); err != nil {
			appLogger.Fatal("Failed to start scheduler", logger.ErrorField(err))
		}
		defer schedulerSvc.Stop()
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")

	cronHandler := delivery.NewCronHandler(schedulerSvc, appLogger)
	cronHandler.RegisterRoutes(apiV1.Group("/cron"))

	reporterHandler := delivery.NewReporterHandler(reporterRepo, articleRepo, eventRepo, appLogger)
	reporterHandler.RegisterRoutes(apiV1)

	editorHandler := delivery.NewEditorHandler(editorRepo, editionRepo, dailyEditionRepo, editorSvc, appLogger)
	editorHandler.RegisterRoutes(apiV1)

	userHandler := delivery.NewUserHandler(userRepo, kpiSvc, appLogger)
	userHandler.RegisterRoutes(apiV1)

	adHandler := delivery.NewAdHandler(adRepo, appLogger)
	adHandler.RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title AI Newsroom API
// @version 1.0
// @description Multi-tenant AI newsroom: reporter agents, editions and daily editions.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "newsroom-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing newsroom-service CLI: %s\n", err)
		os.Exit(1)
	}
}
