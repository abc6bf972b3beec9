package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/benjangure/banking-management-system/pkg/bank"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

var svc *bank.Service

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	// Support a lightweight migrate command: `./banking_app migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		svc = bank.NewService(db)
		seedDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()
	svc = bank.NewService(db)
	seedDB()

	r := gin.Default()

	setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
