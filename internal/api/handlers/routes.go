package handlers

import (
	"encoding/json"
	"errors"
	"exobio-route-sorter/internal/adapters/repositories"
	"exobio-route-sorter/internal/api/dto"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/ports"
	"exobio-route-sorter/internal/report"
	"exobio-route-sorter/internal/services"
	"io"
	"log"
	"net/http"
	"strings"
)

const maxTargetsPerRequest = 500

type RouteHandler struct {
	Repo     ports.TargetRepository
	Resolver ports.CoordinateResolver
}

// Sort orders the requested (or configured) targets into a greedy route from start.
// Each request runs with its own coordinate cache.
func (h *RouteHandler) Sort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	start := strings.TrimSpace(req.Start)
	if start == "" {
		writeError(w, r, http.StatusBadRequest, "start is required")
		return
	}

	if len(req.Targets) > maxTargetsPerRequest {
		writeError(w, r, http.StatusBadRequest, "too many targets")
		return
	}

	repo := h.Repo
	if len(req.Targets) > 0 {
		targets := make([]domain.Target, 0, len(req.Targets))
		for _, t := range req.Targets {
			system := strings.TrimSpace(t.System)
			if system == "" {
				writeError(w, r, http.StatusBadRequest, "target system must be non-empty")
				return
			}
			targets = append(targets, domain.Target{System: system, Annotation: strings.TrimSpace(t.Annotation)})
		}
		repo = repositories.StaticTargetRepository{Targets: repositories.MergeTargets(targets)}
	}

	sum, err := services.SortTargets(r.Context(), repo, h.Resolver, start)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyStart):
			writeError(w, r, http.StatusBadRequest, "start is required")
		case errors.Is(err, services.ErrNoTargets):
			log.Printf("sort targets: %v", err)
			writeError(w, r, http.StatusUnprocessableEntity, "no target systems available")
		case errors.Is(err, services.ErrStartUnresolved):
			writeError(w, r, http.StatusUnprocessableEntity, "could not fetch coordinates for starting system")
		default:
			log.Printf("sort targets failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(sum))
}

func toRouteResponse(sum *services.RouteSummary) dto.RouteResponse {
	res := dto.RouteResponse{
		Start:           sum.Start,
		TotalTargets:    sum.TotalTargets,
		IncludedSystems: sum.IncludedSystems,
		TotalDistanceLY: sum.TotalDistance,
		Exhausted:       sum.Exhausted,
		Discarded:       append([]string{}, sum.Discarded...),
		Hops:            make([]dto.HopResponse, 0, len(sum.Route.Hops)),
	}
	for i, hop := range sum.Route.Hops {
		res.Hops = append(res.Hops, dto.HopResponse{
			Step:       i + 1,
			From:       hop.From,
			To:         hop.To,
			Annotation: report.Annotation(sum.Annotations, hop.To),
			DistanceLY: hop.DistanceLY,
		})
	}
	return res
}
