package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/api"
	"github.com/maheshrc27/dagbok/internal/api/handlers"
	"github.com/maheshrc27/dagbok/internal/api/middleware"
	"github.com/maheshrc27/dagbok/internal/i18n"
	job "github.com/maheshrc27/dagbok/internal/jobs"
	"github.com/maheshrc27/dagbok/internal/logging"
	"github.com/maheshrc27/dagbok/internal/queue"
	"github.com/maheshrc27/dagbok/internal/repository"
	"github.com/maheshrc27/dagbok/internal/service"
	"github.com/maheshrc27/dagbok/migrations"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	if cfg.MigrateOnStart {
		if err := migrations.Up(ctx, db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURI, Password: cfg.RedisPassword})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI, Password: cfg.RedisPassword}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	r2Service, err := service.NewR2Service(ctx, cfg.R2)
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}

	catalog := i18n.MustLoad()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	transcriptionRepo := repository.NewTranscriptionRepository(db)
	sessionRepo := repository.NewSessionRepository(rdb)

	sessionService := service.NewSessionService(*cfg, sessionRepo)
	authService := service.NewAuthService(*cfg, userRepo, sessionService)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	mediaService := service.NewMediaService(r2Service)
	transcriptionService := service.NewTranscriptionService(transcriptionRepo, userRepo, postRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, sessionService, catalog)
	metrics := middleware.NewMetrics()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		BodyLimit:    16 * 1024 * 1024, // 16 MB
		ErrorHandler: handlers.ErrorHandler(catalog),
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return origin == cfg.FrontendURL || origin == cfg.BaseURL
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	app.Use(middleware.LocaleMiddleware())
	app.Use(metrics.Middleware())

	api.SetupRoutes(app, *cfg, api.Handlers{
		Auth:          handlers.NewAuthHandler(*cfg, authService, sessionService, catalog),
		User:          handlers.NewUserHandler(userService, catalog),
		Post:          handlers.NewPostHandler(postService, mediaService, catalog),
		Transcription: handlers.NewTranscriptionHandler(transcriptionService, client, catalog),
		I18n:          handlers.NewI18nHandler(catalog),
		Proxy:         handlers.NewProxyHandler(*cfg, sessionService, catalog),
	}, authMiddleware, metrics)

	// cron jobs
	pendingJob := job.NewPendingTranscriptionJob(transcriptionService, client)

	c := cron.New()
	if err := c.AddFunc(job.PendingSweepSpec, pendingJob.RequeuePending); err != nil {
		log.Fatalf("Failed to schedule pending sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	// queue
	queueW := queue.NewQueue(transcriptionService)

	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
	})

	mux := asynq.NewServeMux()
	queueW.Register(mux)

	log.Println("Starting the Asynq server...")
	if err := server.Start(mux); err != nil {
		log.Fatalf("Could not start Asynq server: %v", err)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, server)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, server *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
	server.Shutdown()

	log.Println("Server shutdown complete.")
}
