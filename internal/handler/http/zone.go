package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/service"
	"github.com/cliphist/clipsync/models"
)

// ensureZone idempotently creates a record namespace. Declaring an existing
// zone succeeds.
func (h *Handler) ensureZone(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var zone models.ZoneDeclaration
	if err := json.NewDecoder(r.Body).Decode(&zone); err != nil {
		log.Err(err).Msg("invalid zone body")
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.service.EnsureZone(r.Context(), zone.Name); err != nil {
		if errors.Is(err, service.ErrEmptyZoneName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Err(err).Str("zone", zone.Name).Msg("zone creation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
