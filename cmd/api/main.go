// @title Missions API
// @description API for the daily missions service
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose"
	"github.com/rs/zerolog/log"

	"github.com/limbo/missions/internal/api"
	"github.com/limbo/missions/internal/badges"
	"github.com/limbo/missions/internal/repository"
	"github.com/limbo/missions/internal/service"
	"github.com/limbo/missions/pkg/cache"
	"github.com/limbo/missions/pkg/cleanup"
	"github.com/limbo/missions/pkg/config"
	"github.com/limbo/missions/pkg/logging"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	logging.Init(logging.Config{
		Level:  cfg.GetStringOr("LOG_LEVEL", "info"),
		Format: cfg.GetStringOr("LOG_FORMAT", "json"),
	})
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	if dir := cfg.GetString("MIGRATIONS_DIR"); dir != "" {
		if err := migrate(dbCfg.ConnString()+"?sslmode="+cfg.GetStringOr("POSTGRES_SSLMODE", "disable"), dir); err != nil {
			log.Fatal().Err(err).Msg("applying migrations error")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := repository.NewPool(ctx, &dbCfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database error")
	}

	store := cache.New(
		cache.WithTTL(cfg.GetDuration("CACHE_TTL", cache.DefaultTTL)),
		cache.WithSweepInterval(cfg.GetDuration("CACHE_SWEEP_INTERVAL", cache.DefaultSweepInterval)),
	)
	if err = store.Start(); err != nil {
		log.Fatal().Err(err).Msg("starting cache sweeper error")
	}
	cleanup.Register(&cleanup.Job{Name: "stopping cache sweeper", F: store.Stop})

	usersRepo := repository.NewUsersRepoWithConn(pool)
	subsRepo := repository.NewSubscriptionsRepoWithConn(pool)
	badgesRepo := repository.NewBadgesRepoWithConn(pool)
	engine := badges.NewEngine(subsRepo, badgesRepo, nil)
	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	malformed, err := engine.Load(ctx)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("loading badge definitions error, conditions compile on first evaluation")
	} else {
		log.Info().Int("malformed", len(malformed)).Msg("badge definitions compiled")
	}

	serv := api.New(&api.ServicesList{
		UserService: service.NewUserService(usersRepo, store),
		MissionsService: service.NewMissionsService(service.MissionsDeps{
			Users:     usersRepo,
			Templates: repository.NewTemplatesRepoWithConn(pool),
			Subs:      subsRepo,
			Badges:    engine,
			Cache:     store,
		}),
		DashboardService:   service.NewDashboardService(subsRepo, store, nil),
		BadgesService:      service.NewBadgesService(badgesRepo, engine),
		RateLimitPerMinute: cfg.GetInt("RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:     splitList(cfg.GetString("CORS_ALLOWED_ORIGINS")),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- serv.Run(cfg.GetStringOr("API_ADDRESS", ":8080"))
	}()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err = <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}
	cleanup.CleanUp()
}

func migrate(connStr, dir string) error {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(conn, dir)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
