package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/cliphist/clipsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ChangeEntry is one row of the append-only change log joined with the
// record it refers to. Seq is the pull cursor; entries are always returned
// in ascending Seq order.
type ChangeEntry struct {
	Seq      int64
	RecordID uuid.UUID
	Op       models.ChangeOp
	DeviceID string

	// Record is the current stored copy, tombstone included. Nil when
	// the record row has vanished (should not happen; rows are kept).
	Record *models.SyncRecord
}

// SyncRepository is the server-side persistence surface the feed service
// builds on.
type SyncRepository interface {
	// RegisterDevice inserts or refreshes a device row.
	RegisterDevice(ctx context.Context, device models.Device) error

	// Devices lists registered devices, most recently seen first.
	Devices(ctx context.Context) ([]models.Device, error)

	// EnsureZone idempotently creates a record namespace.
	EnsureZone(ctx context.Context, name string) error

	// RecordByID loads a record row. Returns [ErrRecordNotFound] if the
	// id was never stored and [ErrRecordDeleted] (with the tombstone's
	// version in the returned record) if it was tombstoned.
	RecordByID(ctx context.Context, id uuid.UUID) (models.SyncRecord, error)

	// UpsertRecord stores the record (insert or full replace) and appends
	// a save entry to the change log in the same transaction. The
	// record's Version must already carry the newly assigned tag.
	UpsertRecord(ctx context.Context, zone string, record models.SyncRecord) error

	// TombstoneRecord marks the record deleted and appends a delete entry
	// to the change log. Tombstoning an unknown id creates the tombstone
	// row so the id can never be claimed later.
	TombstoneRecord(ctx context.Context, zone string, id uuid.UUID, deviceID, version string) error

	// ChangesSince returns up to limit change-log entries with Seq
	// strictly greater than seq, ascending.
	ChangesSince(ctx context.Context, seq int64, limit int) ([]ChangeEntry, error)
}
