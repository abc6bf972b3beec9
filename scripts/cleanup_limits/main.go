package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/benjangure/banking-management-system/pkg/bank"
)

// Deletes daily-limit rows older than the retention window. Housekeeping
// only: limits reset by date-keyed lazy creation, never by this script.
func main() {
	days := flag.Int("days", 90, "delete daily-limit rows older than this many days")
	flag.Parse()
	if *days < 1 {
		log.Fatal("--days must be at least 1")
	}
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	purged, err := bank.NewService(db).PurgeStaleLimits(*days)
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}
	log.Printf("deleted %d stale daily-limit rows (older than %d days)", purged, *days)
}
