package handlers

import (
	"errors"
	"exobio-route-sorter/internal/adapters/repositories"
	"exobio-route-sorter/internal/api/dto"
	"exobio-route-sorter/internal/ports"
	"log"
	"net/http"
)

// TargetHandler exposes the configured target list.
type TargetHandler struct {
	Repo ports.TargetRepository
}

func (h *TargetHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	targets, err := h.Repo.ListTargets(r.Context())
	if errors.Is(err, repositories.ErrTargetsNotFound) {
		writeError(w, r, http.StatusNotFound, "target file not found")
		return
	}
	if err != nil {
		log.Printf("list targets failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTargetsResponse{
		Targets: make([]dto.TargetResponse, 0, len(targets)),
	}
	for _, t := range targets {
		res.Targets = append(res.Targets, dto.TargetResponse{
			System:     t.System,
			Annotation: t.Annotation,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
