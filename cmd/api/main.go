// @title Cert Study API
// @version 1.0
// @description Practice API for certification exam questions extracted from PDFs.
// @host localhost:8090
// @BasePath /api
// @schemes http
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cert-study/internal/cache"
	"cert-study/internal/config"
	"cert-study/internal/database"
	"cert-study/internal/handler"
	"cert-study/internal/logger"
	"cert-study/internal/middleware"
	"cert-study/internal/pipeline"
	"cert-study/internal/repository"
	"cert-study/internal/service"
	"cert-study/web"

	_ "cert-study/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db, cfg.DB.Driver); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient == nil {
		appLogger.Info("Redis not configured; structurer results are not cached")
	} else {
		defer redisClient.Close()
	}

	resolver, err := pipeline.NewResolver(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create page resolver", zap.Error(err))
	}
	structurer, err := pipeline.NewStructurer(cfg, pipeline.NewCache(redisClient), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create structurer", zap.Error(err))
	}

	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	tm := repository.NewTransactionManagerAdapter(db)

	quizService := service.NewQuizService(questionRepo, attemptRepo, service.NewLengthSimilarity(questionRepo), cfg)
	ingestService := service.NewIngestService(resolver, structurer, questionRepo, tm, cfg, appLogger)

	quizHandler := handler.NewQuizHandler(quizService)
	adminHandler := handler.NewAdminHandler(ingestService, cfg.Server.UploadDir, cfg.Ingest.OutputDir, web.UploadPage())

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.SetupRoutes(app, quizHandler, adminHandler)
	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(web.Static()),
		Index: "index.html",
	}))

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("db_driver", cfg.DB.Driver),
			zap.String("structurer", cfg.Ingest.Structurer),
			zap.String("env", cfg.Logger.Env),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
