package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/bloghub/backend/internal/api/http"
	"github.com/bloghub/backend/internal/cache"
	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/db"
	"github.com/bloghub/backend/internal/queue/asynqserver"
	"github.com/bloghub/backend/internal/queue/client"
	"github.com/bloghub/backend/internal/repository"
	"github.com/bloghub/backend/internal/server"
	"github.com/bloghub/backend/internal/service"
	"github.com/bloghub/backend/internal/worker"
	"github.com/bloghub/backend/pkg/auth"
	"github.com/bloghub/backend/pkg/email/smtp"
	"github.com/bloghub/backend/pkg/hash"
	"github.com/bloghub/backend/pkg/logger"
	"github.com/bloghub/backend/pkg/otp"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env)
	defer appLogger.Sync() //nolint:errcheck

	logger.Info("starting blog backend", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	// Init redis: count cache plus the task queue broker
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("error when closing redis", zap.Error(err))
		}
	}()
	logger.Info("redis connection done")

	favoriteCounts := cache.NewFavoriteCounts(redisClient, cfg.Cache.FavoriteCountTTL)

	hasher := hash.NewSHA256Hasher(cfg.Auth.PasswordSalt)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation err", zap.Error(err))
		return
	}

	otpGenerator := otp.NewGOTPGenerator()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:         cfg,
		Hasher:         hasher,
		TokenManager:   tokenManager,
		OtpGenerator:   otpGenerator,
		Repos:          repos,
		FavoriteCounts: favoriteCounts,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// Task queue: the enqueue side is a process-global client, the consume side
	// is an asynq server fed by the same redis.
	queueClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Error("error when closing queue client", zap.Error(err))
		}
	}()
	client.SetClient(queueClient)

	workers := worker.NewWorkers(worker.Deps{
		Services:      services,
		EmailProvider: emailSender,
		Config:        cfg,
	})

	queueSrv, queueMux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := queueSrv.Run(queueMux); err != nil {
			logger.Error("error occurred while running queue server", zap.Error(err))
		}
	}()
	logger.Info("queue server started")

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	queueSrv.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	logger.Info("app stopped")
}
