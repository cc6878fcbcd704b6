// Command reset deletes the configured save slot and its backups so the
// next start begins a new game.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/bootstrap"
	"github.com/osse101/ChronoFarm_Go/internal/config"
	"github.com/osse101/ChronoFarm_Go/internal/save"
)

func main() {
	slot := flag.String("slot", "", "save slot to delete (defaults to SAVE_SLOT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *slot != "" {
		cfg.SaveSlot = *slot
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := bootstrap.OpenSaveBackend(ctx, cfg, time.Now)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.SaveBackend, err)
	}
	defer backend.Close()

	if err := save.ValidateSlot(cfg.SaveSlot); err != nil {
		log.Fatalf("Invalid slot: %v", err)
	}

	backups, err := backend.Backups(ctx, cfg.SaveSlot)
	if err != nil {
		log.Printf("Warning: Failed to list backups: %v\n", err)
	}

	log.Printf("Deleting slot %q from %s (%d backups)...\n", cfg.SaveSlot, backend.Name(), len(backups))
	if err := backend.Delete(ctx, cfg.SaveSlot); err != nil {
		log.Fatalf("Failed to delete slot: %v", err)
	}
	log.Println("Save slot reset complete.")
}
