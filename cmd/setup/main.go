// Command setup creates the PostgreSQL database named by DB_NAME if it is
// missing and applies the save schema migrations.
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ChronoFarm_Go/internal/config"
	"github.com/osse101/ChronoFarm_Go/internal/database"
	"github.com/osse101/ChronoFarm_Go/internal/save/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// 1. Connect to the maintenance database to create the target
	conn, err := pgx.Connect(ctx, serverConnString(cfg))
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	// 2. Create the database when it does not exist
	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}
	if !exists {
		fmt.Printf("Creating database %s...\n", cfg.DBName)
		if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		fmt.Println("Database created successfully.")
	} else {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
	}
	conn.Close(ctx)

	// 3. Apply the embedded migrations
	pool, err := database.NewPool(cfg.GetDBConnString(), 1, time.Minute, time.Minute)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", cfg.DBName, err)
	}
	defer pool.Close()

	fmt.Println("Running migrations...")
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to execute migrations: %v", err)
	}
	fmt.Println("Migrations completed successfully.")
}

// serverConnString points at the maintenance database of the configured server
func serverConnString(cfg *config.Config) string {
	u, err := url.Parse(cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Invalid database settings: %v", err)
	}
	u.Path = "/postgres"
	return u.String()
}
