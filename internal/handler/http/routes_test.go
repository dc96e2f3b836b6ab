package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliphist/clipsync/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ---- Public routes: reachable without a session token ----

func TestInit_PublicRoutes(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/device/register", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.NotEqual(t, http.StatusNotFound, rr.Code,
		"route should be registered: POST /api/device/register")
}

// ---- Protected routes: 401 without token ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/zone/"},
		{http.MethodPost, "/api/records/push"},
		{http.MethodGet, "/api/records/changes"},
		{http.MethodGet, "/api/devices"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" without token → 401", func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code,
				"missing token should result in 401")
		})
	}
}

// ---- Protected routes: pass with a valid token ----

func TestInit_ProtectedRoutes_PassWithValidToken(t *testing.T) {
	h, svc := newTestHandler(t)
	svc.EXPECT().Devices(gomock.Any()).Return(nil, nil)
	router := h.Init()

	token, err := utils.GenerateDeviceToken(testIssuer, "device-a", h.auth.TokenDuration, testSignKey)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
