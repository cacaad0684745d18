package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MarcoPoloResearchLab/lovehub/internal/storage"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var errMissingLocation = errors.New("database location is required")

// Options selects a database driver and the proposal key the migrations inspect.
type Options struct {
	Driver     string
	Path       string
	DSN        string
	StorageKey string
	Clock      func() time.Time
	Logger     *zap.Logger
}

// Open establishes a connection with the configured driver and performs schema migrations.
func Open(opts Options) (*gorm.DB, error) {
	dialector, location, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driverName(opts.Driver), err)
	}

	if driverName(opts.Driver) == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&storage.Entry{}, &migrationRecord{}); err != nil {
		return nil, err
	}

	if err := applyMigrations(db, opts.migrations(), opts.Logger); err != nil {
		return nil, err
	}

	if opts.Logger != nil {
		opts.Logger.Info("database initialized",
			zap.String("driver", driverName(opts.Driver)),
			zap.String("location", location))
	}

	return db, nil
}

// OpenSQLite opens a SQLite database file with default options.
func OpenSQLite(path string, logger *zap.Logger) (*gorm.DB, error) {
	return Open(Options{Driver: DriverSQLite, Path: path, Logger: logger})
}

func dialectorFor(opts Options) (gorm.Dialector, string, error) {
	switch driverName(opts.Driver) {
	case DriverSQLite:
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			return nil, "", fmt.Errorf("sqlite: %w", errMissingLocation)
		}
		return sqlite.Open(path), path, nil
	case DriverPostgres:
		dsn := strings.TrimSpace(opts.DSN)
		if dsn == "" {
			return nil, "", fmt.Errorf("postgres: %w", errMissingLocation)
		}
		return postgres.Open(dsn), "postgres", nil
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func driverName(driver string) string {
	name := strings.ToLower(strings.TrimSpace(driver))
	if name == "" {
		return DriverSQLite
	}
	return name
}
