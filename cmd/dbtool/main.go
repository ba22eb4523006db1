package main

import (
	"exobio-route-sorter/internal/app"
	"exobio-route-sorter/internal/config"
	"log"
)

// dbtool creates the coordinate store schema for the configured backend.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.CoordStore == config.StoreNone {
		log.Fatal("COORD_STORE is none; set it to sqlite or postgres")
	}

	log.Printf("Initializing coordinate store schema backend=%s...", cfg.CoordStore)
	db, _, err := app.OpenStore(cfg)
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	defer db.Close()
	log.Println("Schema ready.")
}
