package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/utils"
	"github.com/cliphist/clipsync/models"
)

// registerDevice opens a feed session: it validates the pre-shared account
// token, records the device, and answers with a session JWT in the
// Authorization response header.
func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if !h.accountTokenValid(r.Header.Get("Authorization")) {
		log.Warn().Msg("device registration with invalid account token")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var reg models.DeviceRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		log.Err(err).Msg("invalid device registration body")
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.service.RegisterDevice(r.Context(), reg); err != nil {
		log.Err(err).Str("device_id", reg.DeviceID).Msg("device registration failed")
		http.Error(w, "device registration failed", http.StatusBadRequest)
		return
	}

	token, err := utils.GenerateDeviceToken(h.auth.TokenIssuer, reg.DeviceID, h.auth.TokenDuration, h.auth.TokenSignKey)
	if err != nil {
		log.Err(err).Msg("failed to issue session token")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Info().Str("device_id", reg.DeviceID).Str("device_name", reg.DeviceName).Msg("device registered")
	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) devices(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	devices, err := h.service.Devices(r.Context())
	if err != nil {
		log.Err(err).Msg("failed to list devices")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if _, err = utils.WriteJSON(w, devices, http.StatusOK); err != nil {
		log.Err(err).Msg("failed to write devices response")
	}
}

func (h *Handler) accountTokenValid(authHeader string) bool {
	if h.auth.AccountToken == "" {
		return false
	}
	token, err := getTokenFromAuthHeader(authHeader)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.auth.AccountToken)) == 1
}
