// Package main is the gymtracker admin CLI: autosave inspection, progression suggestions and migrations.
package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/config"
	"github.com/2beens/gymtracker/internal/db"
	"github.com/2beens/gymtracker/internal/gymstats"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
)

func main() {
	root := newRootCmd(openApp)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp builds the gymstats backends for the given environment.
// The db pool is only opened when withDB is set.
func openApp(ctx context.Context, env, configPath string, withDB bool) (*app, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, err
	}

	dbParams := db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("GYMTRACKER_DB_PASS"),
	}

	a := &app{
		migrate: func() error {
			return db.RunMigrations(db.ConnString(dbParams), cfg.MigrationsPath)
		},
	}
	if !withDB {
		return a, nil
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("db pool: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("GYMTRACKER_REDIS_PASS"),
	})

	gs, err := gymstats.New(gymstats.Params{
		Config:         cfg,
		DBPool:         dbPool,
		RedisClient:    rdb,
		MetricsManager: metrics.NewTestManager(),
	})
	if err != nil {
		dbPool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("setup gymstats: %w", err)
	}

	a.autosaves = gs.Autosaves
	a.discarder = gs.Engine
	a.suggester = gs.Engine
	a.close = func() error {
		defer dbPool.Close()
		if err := gs.Close(); err != nil {
			log.Errorf("close gymstats: %s", err)
		}
		return rdb.Close()
	}

	return a, nil
}
