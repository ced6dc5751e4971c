package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Arhonist/nextjs-dashboard/auth"
	"github.com/Arhonist/nextjs-dashboard/internal/config"
	"github.com/Arhonist/nextjs-dashboard/internal/db"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	log := logrus.New()
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	configureLogger(log, cfg.App)
	auth.SetSecret(cfg.Session.Secret)

	conn, err := db.Connect(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if *migrateOnlyFlag {
		if err := db.Migrate(cfg.Database.DSN()); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
		log.Info("migrations completed")
		return
	}

	if *seedOnlyFlag {
		if err := db.Seed(context.Background(), conn, log); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
		log.Info("seeding completed")
		return
	}

	if err := prepareSchema(conn, cfg); err != nil {
		log.WithError(err).Fatal("schema setup failed")
	}
	if cfg.App.Seed {
		if err := db.Seed(context.Background(), conn, log); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
	}

	app := NewApp(conn, cfg, log)
	stopCleanup := make(chan struct{})
	app.limiter.StartCleanup(10*time.Minute, stopCleanup)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "dev": cfg.App.Dev}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped gracefully")
}

// configureLogger uses readable text output in development and JSON otherwise.
func configureLogger(log *logrus.Logger, app config.AppConfig) {
	if app.Dev {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
		return
	}
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// prepareSchema runs the SQL migrations when enabled and falls back to
// AutoMigrate otherwise.
func prepareSchema(conn *gorm.DB, cfg *config.Config) error {
	if cfg.App.Migrations {
		return db.Migrate(cfg.Database.DSN())
	}
	return db.AutoMigrate(conn)
}
