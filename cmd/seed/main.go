package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"solace/internal/auth"
	"solace/internal/config"
	"solace/internal/repository/store"
	"solace/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	email := flag.String("email", "demo@solace.local", "Demo account email")
	password := flag.String("password", "", "Demo account password (defaults to SEED_PASSWORD)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	db, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer db.Close()

	if *dropTables {
		logger.Info("dropping all tables", "prefix", cfg.TablePrefix)
		if err := db.Reset(ctx); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if *schemaOnly {
		logger.Info("schema setup complete (schema-only mode)")
		return
	}

	pw := *password
	if pw == "" {
		pw = os.Getenv("SEED_PASSWORD")
	}
	if pw == "" {
		log.Fatalf("A demo password is required: pass --password or set SEED_PASSWORD")
	}

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load time zone: %v", err)
	}

	seeder := seed.NewSeeder(db.Users, db.Sessions, db.History, auth.NewBcryptHasher(0), location, logger)

	if err := seeder.SeedUser(ctx, *email, pw); err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	ids, err := seeder.SeedConversations(ctx, *email, time.Now(), seed.DemoConversations())
	if err != nil {
		log.Fatalf("Failed to seed conversations: %v", err)
	}

	logger.Info("seeding complete",
		"email", *email,
		"sessions", len(ids),
		"store", cfg.StoreDriver,
	)
}
