// Package main is the entry point of the note-keeping service.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/adapters/cache"
	httpadapter "notekeeper/internal/adapters/http"
	"notekeeper/internal/adapters/postgres"
	"notekeeper/internal/adapters/services"
	"notekeeper/internal/app"
	"notekeeper/internal/config"
	db "notekeeper/pkg/db/postgres"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/shutdown"
)

// Environment variable names used before the configuration is loaded.
const (
	EnvLoggerMode  = "LOGGER_MODE"
	EnvLoggerLevel = "LOGGER_LEVEL"
)

// Error messages.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrRunMigrations        = "failed to run migrations"
	ErrInitCache            = "failed to initialize cache"
	ErrStartHTTP            = "failed to start HTTP server"
)

// Ignorable sync errors.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Service messages.
const (
	LogServiceStarted      = "notekeeper service started"
	LogServiceShutdownDone = "notekeeper service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing cache connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitRouter          = "initializing HTTP router"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		if strings.ToLower(cfg.Logging.Mode) == "production" {
			env = logger.Production
		} else {
			env = logger.Development
		}
		finalLogger, err := logger.NewLogger(env, cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		if err := db.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Migration.Path); err != nil {
			log.Error(ctx, ErrRunMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		listCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrInitCache, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		userRepo := postgres.NewUserRepository(database.Pool())
		noteRepo := postgres.NewNoteRepository(database.Pool())

		log.Info(ctx, LogInitServices)
		passwordService := services.NewBcrypt(cfg.Accounts.BcryptCost)
		tokenService := services.NewJWT(cfg.JWT.SecretKey, cfg.JWT.TokenTTL)

		log.Info(ctx, LogInitUseCases)
		accountUseCase := app.NewAccountUseCase(userRepo, noteRepo, passwordService, cfg.Accounts.BootstrapActor)
		noteUseCase := app.NewNoteUseCase(noteRepo)

		log.Info(ctx, LogInitRouter)
		fiberApp := fiber.New()
		httpadapter.SetupRouter(fiberApp, accountUseCase, noteUseCase, tokenService, listCache)

		log.Info(ctx, LogStartingHTTP)
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddressString()); err != nil {
				log.Error(ctx, ErrStartHTTP, zap.Error(err))
			}
		}()

		shutdown.Wait(time.Duration(cfg.Shutdown.Timeout)*time.Second,
			func(hookCtx context.Context) error {
				log.Info(hookCtx, LogStoppingHTTP)
				return fiberApp.ShutdownWithContext(hookCtx)
			},
			func(hookCtx context.Context) error {
				log.Info(hookCtx, LogClosingCache)
				return listCache.Close()
			},
			func(hookCtx context.Context) error {
				log.Info(hookCtx, LogClosingDB)
				database.Close(hookCtx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	os.Exit(exitCode)
}
