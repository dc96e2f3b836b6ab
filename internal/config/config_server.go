// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"time"
)

// ServerAuth holds the credential settings the sync server needs.
type ServerAuth struct {
	// AccountToken is the pre-shared credential devices register with.
	AccountToken string
	// TokenSignKey signs and verifies session JWTs.
	TokenSignKey string
	// TokenIssuer is the "iss" claim of issued session tokens.
	TokenIssuer string
	// TokenDuration is the session token lifetime.
	TokenDuration time.Duration
}

// ServerDB contains database connection settings for the server.
type ServerDB struct {
	// DSN is the PostgreSQL connection string.
	DSN string
}

// ServerConfig is the server-specific configuration view assembled from
// [StructuredConfig].
type ServerConfig struct {
	// Auth contains credential settings.
	Auth ServerAuth
	// DB contains database settings.
	DB ServerDB
	// HTTPAddress is the listen address in "host:port" format.
	HTTPAddress string
	// RequestTimeout bounds inbound request handling.
	RequestTimeout time.Duration
}

// GetServerConfig builds and validates a server-specific config view from
// the merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		Auth: ServerAuth{
			AccountToken:  cfg.App.AccountToken,
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
		},
		DB: ServerDB{
			DSN: cfg.Storage.DB.DSN,
		},
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
	}

	return serverCfg, serverCfg.validate()
}
