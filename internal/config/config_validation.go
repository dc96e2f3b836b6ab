// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the server view satisfies all startup invariants.
func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.AccountToken == "" || cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

// validate checks that the daemon view satisfies all startup invariants.
// Paths may be empty: the daemon falls back to in-memory state, which is
// useful for ephemeral runs but loses the queue across restarts.
func (cfg *DaemonConfig) validate() error {
	if cfg.Device.ID == "" {
		return ErrInvalidDeviceConfigs
	}

	if cfg.Adapter.ServerURL == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.HistoryPath == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
