package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/service"
	"github.com/cliphist/clipsync/internal/utils"
	"github.com/cliphist/clipsync/models"
)

// push applies a batch of record saves and tombstones. The submitting
// device identity comes from the session token, never from the body.
func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid push body")
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if deviceID, ok := utils.GetDeviceIDFromContext(r.Context()); ok {
		req.DeviceID = deviceID
	}

	resp, err := h.service.Push(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyDeviceID), errors.Is(err, service.ErrBatchLengthMismatch):
			log.Err(err).Msg("push rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Err(err).Msg("push failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).Msg("failed to write push response")
	}
}

// changes serves one page of the change feed past the checkpoint given in
// the base64url "checkpoint" query parameter.
func (h *Handler) changes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var checkpoint []byte
	if raw := r.URL.Query().Get("checkpoint"); raw != "" {
		decoded, err := base64.URLEncoding.DecodeString(raw)
		if err != nil {
			log.Err(err).Msg("undecodable checkpoint parameter")
			http.Error(w, "invalid checkpoint", http.StatusBadRequest)
			return
		}
		checkpoint = decoded
	}

	result, err := h.service.Changes(r.Context(), checkpoint)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCheckpoint):
			log.Err(err).Msg("invalid checkpoint cursor")
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Err(err).Msg("change feed query failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	if _, err = utils.WriteJSON(w, result, http.StatusOK); err != nil {
		log.Err(err).Msg("failed to write changes response")
	}
}
