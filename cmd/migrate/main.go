package main

import (
	"flag"
	"fmt"
	"log"

	"erp-rfm-engine/internal/shared/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var command string
	flag.StringVar(&command, "cmd", "up", "Migration command (up, down, version, force)")
	flag.Parse()

	cfg := config.LoadConfig()

	migrationPath := "file://migrations"

	log.Printf("🔄 Running migrations")
	log.Printf("📂 Migration path: %s", migrationPath)
	log.Printf("💾 Database: %s", maskDatabaseURL(cfg.DatabaseURL))

	m, err := migrate.New(migrationPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to create migrate instance: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		log.Println("⬆️  Running UP migrations...")
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("❌ Migration UP failed: %v", err)
		}
		log.Println("✅ Migrations UP completed!")

	case "down":
		log.Println("⬇️  Running DOWN migrations...")
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("❌ Migration DOWN failed: %v", err)
		}
		log.Println("✅ Migrations DOWN completed!")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && err != migrate.ErrNilVersion {
			log.Fatalf("❌ Failed to get version: %v", err)
		}
		log.Printf("📌 Current version: %d (dirty: %t)", version, dirty)

	case "force":
		if len(flag.Args()) < 1 {
			log.Fatal("❌ Please provide version number for force command")
		}
		var forceVersion int
		fmt.Sscanf(flag.Arg(0), "%d", &forceVersion)
		if err := m.Force(forceVersion); err != nil {
			log.Fatalf("❌ Force failed: %v", err)
		}
		log.Printf("✅ Forced version to: %d", forceVersion)

	default:
		log.Fatalf("❌ Unknown command: %s (use: up, down, version, force)", command)
	}
}

// maskDatabaseURL hides password in database URL for logging
func maskDatabaseURL(url string) string {
	if len(url) < 20 {
		return "***"
	}
	return url[:20] + "***" + url[len(url)-10:]
}
