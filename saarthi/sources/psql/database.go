package psql

import (
	"context"
	"fmt"

	"saarthi/saarthi/config"
	"saarthi/saarthi/sources/psql/models"
	"saarthi/saarthi/utils/logging"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase connects to Postgres and migrates the transcript tables.
func NewDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)
	logging.AppLogger.Info("connecting to database",
		zap.String("host", cfg.DBHost), zap.String("port", cfg.DBPort), zap.String("db", cfg.DBName))
	return Open(ctx, postgres.Open(connStr))
}

// Open wraps any gorm dialector; tests pass an in-memory sqlite one.
func Open(ctx context.Context, dialector gorm.Dialector) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	err = db.WithContext(ctx).
		AutoMigrate(
			&models.ConversationTurn{},
			&models.SessionRecord{},
		)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return &Database{DB: db}, nil
}

func (db *Database) Close() {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
