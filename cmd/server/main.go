package main

import (
	"log"

	"projectvote/internal/app"
	"projectvote/internal/config"
	"projectvote/internal/logging"
	"projectvote/pkg/db/postgres"
)

func main() {
	logging.Init()
	log.Println("Starting projectvote...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := postgres.InitDB(cfg.Database); err != nil {
		log.Fatalf("Failed to init postgres: %v", err)
	}

	if err := app.NewApp(cfg, postgres.GetDB()).Run(); err != nil {
		log.Fatal(err)
	}
}
