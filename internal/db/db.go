// Package db provides database connectivity and operations
package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fixflow/fixflow/internal/db/models"
)

// Database configuration constants
const (
	// DefaultHost is the default database host
	DefaultHost = "localhost"
	// DefaultPort is the default database port
	DefaultPort = 5432
	// DefaultUser is the default database user
	DefaultUser = "postgres"
	// DefaultPassword is the default database password
	DefaultPassword = "postgres"
	// DefaultDBName is the default database name
	DefaultDBName = "fixflow"
)

// Options represents database connection configuration options
type Options struct {
	Host       string
	User       string
	Password   string
	DBName     string
	Port       int
	SSLEnabled bool
	LogLevel   logger.LogLevel
}

// DefaultOptions returns connection options suitable for local development
func DefaultOptions() Options {
	return Options{
		Host:     DefaultHost,
		Port:     DefaultPort,
		User:     DefaultUser,
		Password: DefaultPassword,
		DBName:   DefaultDBName,
		LogLevel: logger.Warn,
	}
}

// DSN renders the options as a Postgres connection string
func (o Options) DSN() string {
	sslMode := "disable"
	if o.SSLEnabled {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		o.Host, o.User, o.Password, o.DBName, o.Port, sslMode)
}

// Connect opens a GORM connection to Postgres
func Connect(opts Options) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(opts.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gdb, nil
}

// Migrate runs GORM auto-migration for every persisted model
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Customer{},
		&models.Job{},
		&models.ActivityLog{},
		&models.StatusChangeEvent{},
		&models.Callback{},
	)
}
