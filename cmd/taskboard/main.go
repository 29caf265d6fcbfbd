package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/auth"
	"github.com/taskboard-dev/taskboard/internal/config"
	"github.com/taskboard-dev/taskboard/internal/handlers"
	"github.com/taskboard-dev/taskboard/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DBPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := auth.Init(cfg.JWTSecret, cfg.TokenTTL); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	handlers.Configure(cfg)

	r := router.NewRouter(cfg)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
