// This file is used to run database migrations
// How to run:
// go run cmd/migrate/main.go
package main

import (
	"log"

	"github.com/fixflow/fixflow/config"
	"github.com/fixflow/fixflow/internal/db"
)

func main() {
	config.Load()

	opts := db.DefaultOptions()
	opts.Host = config.GetEnv("DB_HOST", opts.Host)
	opts.Port = config.GetEnvInt("DB_PORT", opts.Port)
	opts.User = config.GetEnv("DB_USER", opts.User)
	opts.Password = config.GetEnv("DB_PASSWORD", opts.Password)
	opts.DBName = config.GetEnv("DB_NAME", opts.DBName)
	opts.SSLEnabled = config.GetEnvBool("DB_SSL", false)

	gdb, err := db.Connect(opts)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied successfully")
}
