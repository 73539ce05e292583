package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/splitr-dev/splitr-api/internal/api"
	"github.com/splitr-dev/splitr-api/internal/core/service"
	"github.com/splitr-dev/splitr-api/internal/infrastructure/config"
	"github.com/splitr-dev/splitr-api/internal/infrastructure/db/mongo"
	"github.com/splitr-dev/splitr-api/internal/infrastructure/db/redis"
	"github.com/splitr-dev/splitr-api/internal/reminder"
	"github.com/splitr-dev/splitr-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not up yet.
		panic("config: " + err.Error())
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	userRepo := mongo.NewUserRepository(db)
	expenseRepo := mongo.NewExpenseRepository(db)
	settlementRepo := mongo.NewSettlementRepository(db)
	groupRepo := mongo.NewGroupRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":       userRepo,
		"expenses":    expenseRepo,
		"settlements": settlementRepo,
		"groups":      groupRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	authService := service.NewAuthService(userRepo, log, cfg.JWTSecret, 24*time.Hour)
	expenseService := service.NewExpenseService(expenseRepo, settlementRepo, userRepo, groupRepo, log)
	settlementService := service.NewSettlementService(settlementRepo, groupRepo, log)
	balanceService := service.NewBalanceService(expenseRepo, settlementRepo, userRepo, log)
	groupService := service.NewGroupService(groupRepo, expenseRepo, settlementRepo, userRepo, log)
	contactService := service.NewContactService(expenseRepo, groupRepo, userRepo, log)

	if cfg.Reminder.Enabled {
		dedup := redis.NewReminderDedup(redisClient)
		notifier := reminder.NewLogNotifier(log)
		dispatcher := reminder.NewDispatcher(cfg.Reminder.Workers, notifier, dedup, log)
		dispatcher.Start(ctx)

		scheduler := reminder.NewScheduler(balanceService, dispatcher, cfg.Reminder.Hour, log)
		go scheduler.Run(ctx)
		log.Info().Int("hour_utc", cfg.Reminder.Hour).Int("workers", cfg.Reminder.Workers).Msg("debt reminder scheduler started")
	}

	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Expenses:    expenseService,
		Settlements: settlementService,
		Balances:    balanceService,
		Groups:      groupService,
		Contacts:    contactService,
		MongoClient: mongoClient,
		Redis:       redisClient,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
