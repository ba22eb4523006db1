package main

import (
	"exobio-route-sorter/internal/adapters/cache"
	"exobio-route-sorter/internal/adapters/repositories"
	"exobio-route-sorter/internal/api"
	"exobio-route-sorter/internal/app"
	"exobio-route-sorter/internal/config"
	"log"
	"net/http"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (EDSM, coordinate store, target file) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	resolver, err := app.NewResolver(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer resolver.Close()

	// Concurrent requests for the same system share one EDSM call; each
	// request still keeps its own run cache.
	shared := cache.NewSharedResolver(resolver)
	repo := repositories.NewFileTargetRepository(cfg.TargetsPath)
	router := api.NewRouter(repo, shared)

	// Write timeout allows for a cold route: one paced EDSM call per target.
	log.Printf("Server listening addr=:%s targets=%s store=%s", cfg.Port, cfg.TargetsPath, cfg.CoordStore)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
