package database

import (
	"fmt"
	"time"

	"chemezy-server/internal/infrastructure/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

var DB *gorm.DB

// Config holds database configuration
type Config struct {
	DatabaseURL string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the repositories rely on.
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "chemezy.",
			SingularTable: false,
		},
		Logger:         gormlogger.Default.LogMode(cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		log := logger.GetLogger()
		log.Error().
			Str("error_code", "8f0b2c3a-1d9e-4b7a-9c5d-0e6f1a2b3c4d").
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log := logger.GetLogger()
	log.Info().Msg("Successfully connected to database")
	DB = db
	return DB, nil
}

// NewDB creates a new database connection using DSN
func NewDB(dsn string) (*gorm.DB, error) {
	return Connect(Config{
		DatabaseURL: dsn,
		MaxIdle:     10,
		MaxOpen:     25,
		MaxLifetime: 1 * time.Hour,
		LogLevel:    gormlogger.Silent,
	})
}

// AutoMigrate creates the schema and every registered table.
func AutoMigrate(db *gorm.DB) error {
	schemaName := "chemezy"

	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;", schemaName)).Error; err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	for _, model := range SchemaRegistry {
		if err := db.AutoMigrate(model); err != nil {
			log := logger.GetLogger()
			log.Error().
				Str("error_code", "5e1a7c9b-2f4d-4e8a-b6c3-9d0e1f2a3b4c").
				Err(err).
				Msgf("failed to auto migrate schema: %T", model)
			return err
		}
	}
	return nil
}
