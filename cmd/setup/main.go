package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/scrapworks/reclaimer/internal/aggregate"
	"github.com/scrapworks/reclaimer/internal/catalog"
	"github.com/scrapworks/reclaimer/internal/config"
	"github.com/scrapworks/reclaimer/internal/domain"
	"github.com/scrapworks/reclaimer/internal/database"
	"github.com/scrapworks/reclaimer/internal/database/postgres"
)

// setup provisions the database, applies migrations and syncs the catalog
// JSON into it. Safe to re-run; all steps are idempotent.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	ctx := context.Background()

	// 1. Connect to default 'postgres' database to create the new database
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", user, password, host, port)
	conn, err := pgx.Connect(ctx, defaultConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	// 2. Check if database exists
	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbname).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if !exists {
		fmt.Printf("Creating database %s...\n", dbname)
		_, err = conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbname))
		if err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		fmt.Println("Database created successfully.")
	} else {
		fmt.Printf("Database %s already exists.\n", dbname)
	}

	// Close connection to postgres db
	conn.Close(ctx)

	// 3. Connect to the target database and run goose migrations
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", dbname, err)
	}
	defer pool.Close()

	fmt.Println("Running migrations...")
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	fmt.Println("Migrations completed successfully.")

	// 4. Load, validate and sync the catalog
	loader := catalog.NewLoader()

	catalogConfig, err := loader.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog from %s: %v", cfg.CatalogPath, err)
	}
	if err := loader.Validate(catalogConfig); err != nil {
		log.Fatalf("Catalog validation failed: %v", err)
	}

	// 5. Dry-run the aggregation engine over an in-memory copy before touching
	// the database, so a catalog that breaks the engine never gets synced
	store := catalog.NewMemoryStore(catalogConfig)
	engine := aggregate.NewService(store)

	craftableIDs := make([]string, 0)
	for _, def := range catalogConfig.Items {
		if def.Craftable {
			craftableIDs = append(craftableIDs, def.ID)
		}
	}
	if _, err := engine.Aggregate(ctx, craftableIDs, domain.ScoringMaxYield, domain.DefaultFilterOptions()); err != nil {
		log.Fatalf("Catalog dry-run aggregation failed: %v", err)
	}
	fmt.Printf("Dry-run aggregation over %d craftables passed.\n", len(craftableIDs))

	repo := postgres.NewCatalogRepository(pool)
	result, err := loader.SyncToDatabase(ctx, catalogConfig, repo)
	if err != nil {
		log.Fatalf("Failed to sync catalog: %v", err)
	}

	fmt.Printf("Catalog synced: %d items inserted, %d updated, %d edges replaced.\n",
		result.ItemsInserted, result.ItemsUpdated, result.EdgesReplaced)
}
