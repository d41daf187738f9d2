// Package main wires the TaskFlow HTTP API.
//
// @title                       TaskFlow API
// @version                     1.0
// @description                 Project and task tracking with per-user dashboards and system analytics.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/api"
	"github.com/taskflow/taskflow-api/internal/api/handler"
	"github.com/taskflow/taskflow-api/internal/core/service"
	mongodb "github.com/taskflow/taskflow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskflow/taskflow-api/internal/infrastructure/db/redis"
	"github.com/taskflow/taskflow-api/internal/pkg/config"
	"github.com/taskflow/taskflow-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "taskflow-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = rdb.Close()
	}()

	users := mongodb.NewUserRepository(db)
	projects := mongodb.NewProjectRepository(db)
	tasks := mongodb.NewTaskRepository(db)
	blocklist := redisdb.NewTokenBlocklist(rdb)

	clock := service.Clock(time.Now)

	authService := service.NewAuthService(users, blocklist, cfg.JWTSecret, cfg.JWTTTL, clock, logger.Component("auth"))
	if cfg.Admin.Enabled() {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Dependencies{
		Auth:        authService,
		Users:       service.NewUserService(users, projects, tasks, clock, logger.Component("users")),
		Projects:    service.NewProjectService(users, projects, tasks, clock, logger.Component("projects")),
		Tasks:       service.NewTaskService(projects, tasks, clock, logger.Component("tasks")),
		Analytics:   service.NewAnalyticsService(users, projects, tasks, clock, logger.Component("analytics")),
		Revocations: blocklist,
		Health: map[string]handler.Pinger{
			"mongodb": mongodb.NewPinger(client),
			"redis":   redisdb.NewPinger(rdb),
		},
		JWTSecret: cfg.JWTSecret,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("http server listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server shutdown timeout")
	}
	return nil
}
