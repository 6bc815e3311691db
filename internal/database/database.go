// Package database opens the gorm connection for the configured driver and
// brings the schema up to date.
package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vladimiradmaev/health-tracker/internal/config"
	"github.com/vladimiradmaev/health-tracker/internal/database/migrations"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

const memoryPath = ":memory:"

func init() {
	migrations.Register("004_profile_conditions_default", func(db *gorm.DB) error {
		return db.Model(&ProfileRow{}).
			Where("conditions IS NULL OR conditions = ''").
			Update("conditions", "[]").Error
	}, nil)
}

// Open connects with cfg.Driver and migrates the schema.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresDB(cfg)
	case config.DriverSQLite:
		return NewSQLiteDB(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Info("Database connection established and migrations completed", "driver", config.DriverPostgres)
	return db, nil
}

// NewSQLiteDB opens (creating if needed) a SQLite file. The pure-Go driver
// needs no cgo toolchain.
func NewSQLiteDB(path string) (*gorm.DB, error) {
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every new connection to :memory: would see an empty database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Info("Database connection established and migrations completed", "driver", config.DriverSQLite, "path", path)
	return db, nil
}

// NewMemoryDB opens a private in-memory SQLite database.
func NewMemoryDB() (*gorm.DB, error) {
	return NewSQLiteDB(memoryPath)
}

// Migrate creates the tables from the row models, then applies the
// registered migrations (indexes and data fixes) on top.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	if err := migrations.LoadEmbedded(); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.GetLogger().Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}
