package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/refsync/refsync/internal/config"
	"github.com/refsync/refsync/internal/database"
	"github.com/refsync/refsync/internal/pdfcontent"
	"github.com/refsync/refsync/internal/storage"
	"github.com/refsync/refsync/internal/sync"
	"github.com/refsync/refsync/internal/zotero"
)

func main() {
	envFile := flag.String("f", "", "optional .env file to load before reading the environment")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("Failed to load env file %s: %v", *envFile, err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	client := zotero.NewClient(cfg.ZoteroAPIURL, cfg.ZoteroAPIKey, cfg.ZoteroUserID)
	syncer := sync.New(db, client, store, pdfcontent.NewExtractor(), sync.OptionsFromConfig(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	remoteGroups, err := client.Groups(ctx)
	if err != nil {
		log.Fatalf("Failed to list groups: %v", err)
	}
	log.Printf("Found %d groups", len(remoteGroups))

	groups, err := syncer.SaveGroups(ctx, remoteGroups)
	if err != nil {
		log.Fatalf("Failed to save groups: %v", err)
	}

	failures := 0
	for i := range groups {
		if err := syncer.SyncGroup(ctx, &groups[i]); err != nil {
			if ctx.Err() != nil {
				log.Fatalf("Sync interrupted: %v", err)
			}
			failures++
			log.Printf("Sync failed for group %d: %v", groups[i].ExternalID, err)
		}
	}

	log.Printf("Sync complete: %s", syncer.Stats())
	if failures > 0 {
		log.Fatalf("%d of %d groups failed", failures, len(groups))
	}
}
