// Package history implements the local clipboard history store consumed by
// the sync coordinator: a SQLite-backed implementation for the daemon and a
// map-backed one for tests.
package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/cliphist/clipsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/history_store_mock.go -package=mock

// Store is the read/write surface the sync engine needs from local history.
//
// Reads are synchronous and fast; the coordinator calls ItemByID while
// building outgoing batches. InsertSyncedItem and DeleteSyncedItem are the
// write surface for inbound remote changes.
type Store interface {
	// SaveCaptured stores a locally captured entry, replacing any entry
	// with the same id.
	SaveCaptured(ctx context.Context, item models.ClipboardItem) error

	// ItemByID returns the entry with the given id, or [ErrItemNotFound].
	ItemByID(ctx context.Context, id uuid.UUID) (models.ClipboardItem, error)

	// AllItemIDs returns the ids of every stored entry.
	AllItemIDs(ctx context.Context) ([]uuid.UUID, error)

	// InsertSyncedItem upserts an entry received from another device.
	InsertSyncedItem(ctx context.Context, item models.ClipboardItem) error

	// DeleteSyncedItem removes the entry with the given id. Removing an
	// absent entry is not an error.
	DeleteSyncedItem(ctx context.Context, id uuid.UUID) error

	// TouchPasteCount increments the usage counter of an entry.
	TouchPasteCount(ctx context.Context, id uuid.UUID) error
}
