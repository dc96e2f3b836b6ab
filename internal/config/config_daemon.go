// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"time"
)

// DaemonDevice holds the daemon's device identity settings.
type DaemonDevice struct {
	// ID is the stable device identifier.
	ID string
	// Name is the human-readable device name.
	Name string
	// ReadOnly makes the daemon pull-only.
	ReadOnly bool
}

// DaemonAdapter holds network settings for the daemon's feed client.
type DaemonAdapter struct {
	// ServerURL is the sync server base URL.
	ServerURL string
	// AccountToken is the pre-shared account credential.
	AccountToken string
	// RequestTimeout bounds outbound requests.
	RequestTimeout time.Duration
}

// DaemonStorage groups the daemon's on-disk state locations.
type DaemonStorage struct {
	// HistoryPath is the SQLite clipboard history database file.
	HistoryPath string
	// QueuePath is the pending queue file.
	QueuePath string
	// CheckpointPath is the pull checkpoint file.
	CheckpointPath string
}

// DaemonWorkers contains background job settings for the daemon.
type DaemonWorkers struct {
	// SyncInterval defines how often the periodic sync worker fires.
	SyncInterval time.Duration
	// EncryptPayloads seals outbound record content before pushing.
	EncryptPayloads bool
}

// DaemonConfig is the daemon-specific configuration view assembled from
// [StructuredConfig].
type DaemonConfig struct {
	// Device contains the daemon's identity.
	Device DaemonDevice
	// Adapter contains feed client settings.
	Adapter DaemonAdapter
	// Storage contains local file locations.
	Storage DaemonStorage
	// Workers contains background job settings.
	Workers DaemonWorkers
}

// GetDaemonConfig builds and validates a daemon-specific config view from
// the merged structured configuration.
func GetDaemonConfig() (*DaemonConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	daemonCfg := &DaemonConfig{
		Device: DaemonDevice{
			ID:       cfg.Device.ID,
			Name:     cfg.Device.Name,
			ReadOnly: cfg.Device.ReadOnly,
		},
		Adapter: DaemonAdapter{
			ServerURL:      cfg.Adapter.ServerURL,
			AccountToken:   cfg.App.AccountToken,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: DaemonStorage{
			HistoryPath:    cfg.Storage.Files.HistoryPath,
			QueuePath:      cfg.Storage.Files.QueuePath,
			CheckpointPath: cfg.Storage.Files.CheckpointPath,
		},
		Workers: DaemonWorkers{
			SyncInterval:    cfg.Workers.SyncInterval,
			EncryptPayloads: cfg.Workers.EncryptPayloads,
		},
	}

	return daemonCfg, daemonCfg.validate()
}
