// Package http implements the HTTP transport of the sync server:
// middleware, route handlers, and request/response plumbing in front of the
// feed service.
package http

import (
	"time"

	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/service"
)

// AuthSettings carries the transport-level credentials: the pre-shared
// account token devices register with and the parameters of the session
// JWTs handed back.
type AuthSettings struct {
	AccountToken  string
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

type Handler struct {
	service service.FeedService
	auth    AuthSettings

	logger *logger.Logger
}

func NewHandler(svc service.FeedService, auth AuthSettings, log *logger.Logger) *Handler {
	if auth.TokenIssuer == "" {
		auth.TokenIssuer = "clipsync-server"
	}
	if auth.TokenDuration <= 0 {
		auth.TokenDuration = 24 * time.Hour
	}

	log.Info().Msg("http handler created")
	return &Handler{
		service: svc,
		auth:    auth,
		logger:  log,
	}
}
