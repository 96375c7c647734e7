package cmd

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/config"
	"github.com/vibast-solutions/ms-go-club/migrations"

	_ "github.com/go-sql-driver/mysql"
)

func mustOpenDatabase(cfg *config.Config) (*sql.DB, func()) {
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}
	return db, cleanup
}

func mustMigrateIfEnabled(ctx context.Context, cfg *config.Config, db *sql.DB) {
	if !cfg.App.MigrationsEnabled {
		return
	}
	changed, err := migrations.Up(ctx, db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to apply migrations")
	}
	logrus.WithField("changed", changed).Info("Migrations applied")
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	return cfg
}
