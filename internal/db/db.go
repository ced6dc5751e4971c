// Package db opens the store, applies the schema and seeds placeholder data.
package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Arhonist/nextjs-dashboard/internal/config"
	"github.com/Arhonist/nextjs-dashboard/internal/models"
)

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

// Connect opens PostgreSQL, retrying while the server starts up.
func Connect(cfg config.DatabaseConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(level)}

	var (
		conn *gorm.DB
		err  error
	)
	for i := 1; i <= connectAttempts; i++ {
		conn, err = gorm.Open(postgres.Open(cfg.DSN()), gcfg)
		if err == nil {
			err = conn.Exec("SELECT 1").Error
		}
		if err == nil {
			break
		}
		log.WithError(err).WithField("attempt", i).Warn("database not ready, retrying")
		time.Sleep(connectDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after %d attempts: %w", connectAttempts, err)
	}

	log.WithFields(logrus.Fields{
		"host":   cfg.Host,
		"port":   cfg.Port,
		"dbname": cfg.DBName,
	}).Info("database connected")
	return conn, nil
}

// Models lists every persisted model.
func Models() []any {
	return []any{&models.User{}, &models.Customer{}, &models.Invoice{}}
}

// AutoMigrate creates the schema from the gorm models. It is the
// development and test path; production runs the SQL migrations.
func AutoMigrate(conn *gorm.DB) error {
	for _, m := range Models() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Ping checks the database connection.
func Ping(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
