package service

import (
	"context"

	"github.com/cliphist/clipsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// FeedService is the server-side feed: device registry, zone management,
// push with per-record conflict detection, and the change feed behind the
// pull cursor.
type FeedService interface {
	// RegisterDevice inserts or refreshes a device registration.
	RegisterDevice(ctx context.Context, reg models.DeviceRegistration) error

	// Devices lists registered devices, most recently seen first.
	Devices(ctx context.Context) ([]models.Device, error)

	// EnsureZone idempotently creates a record namespace.
	EnsureZone(ctx context.Context, name string) error

	// Push applies a batch of saves and tombstones, answering each item
	// with saved, conflict, or failed. A per-record failure never fails
	// the batch.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Changes returns one page of the change feed past the checkpoint.
	Changes(ctx context.Context, checkpoint []byte) (models.PullResult, error)
}
