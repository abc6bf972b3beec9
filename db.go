package main

import (
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/benjangure/banking-management-system/models"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others.
		// Users first so the accounts/beneficiaries FKs can be applied safely.
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Account{}); err != nil {
			log.Printf("migration warning (accounts): %v", err)
		}
		if err := db.AutoMigrate(&models.Transaction{}); err != nil {
			log.Printf("migration warning (transactions): %v", err)
		}
		if err := db.AutoMigrate(&models.DailyLimit{}); err != nil {
			log.Printf("migration warning (daily_limits): %v", err)
		}
		if err := db.AutoMigrate(&models.Beneficiary{}); err != nil {
			log.Printf("migration warning (beneficiaries): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Printf("migration warning (refresh_tokens): %v", err)
		}
	}
}

// seedDB creates a demo login with the default account pair so a fresh
// install has something to poke at. Controlled by SEED_DEMO_USER (default on).
func seedDB() {
	if v := strings.ToLower(os.Getenv("SEED_DEMO_USER")); v == "false" || v == "0" || v == "no" {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("username = ?", "demo").Count(&count)
	if count > 0 {
		return
	}
	if _, _, err := RegisterUser("demo", "demo@example.com", "demo123", "Demo User", ""); err != nil {
		log.Printf("failed to seed demo user: %v", err)
		return
	}
	log.Println("Seeded demo user: username=demo, password=demo123")
}
