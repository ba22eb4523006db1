package api

import (
	"exobio-route-sorter/internal/api/handlers"
	"exobio-route-sorter/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.TargetRepository, resolver ports.CoordinateResolver) http.Handler {
	mux := http.NewServeMux()

	targetHandler := &handlers.TargetHandler{Repo: repo}
	routeHandler := &handlers.RouteHandler{
		Repo:     repo,
		Resolver: resolver,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/targets", targetHandler.List)
	mux.HandleFunc("/routes", routeHandler.Sort)

	// Request ids are attached before logging so that the access line carries them.
	return requestIDMiddleware(loggingMiddleware(mux))
}
