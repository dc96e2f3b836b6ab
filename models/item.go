package models

import (
	"time"

	"github.com/google/uuid"
)

// ClipboardItem is one entry of the local clipboard history.
//
// ID is assigned once at capture time and is stable for the life of the
// logical entry; it doubles as the remote record key during sync.
// Timestamp is the device-local capture time and is never mutated after
// creation; only PasteCount may change.
type ClipboardItem struct {
	// ID is the globally unique identifier of the entry.
	ID uuid.UUID `json:"id"`

	// Content is the captured clipboard payload.
	Content ClipboardContent `json:"content"`

	// Timestamp is the capture time on the originating device's clock.
	// Device clocks are not synchronized; conflict resolution accepts
	// this approximation.
	Timestamp time.Time `json:"timestamp"`

	// SourceAppBundleID optionally identifies the application the content
	// was copied from (e.g. "com.apple.Safari").
	SourceAppBundleID string `json:"source_app_bundle_id,omitempty"`

	// SourceAppName is the human-readable name of the source application.
	SourceAppName string `json:"source_app_name,omitempty"`

	// PasteCount counts how many times the entry was pasted. It is
	// monotonically non-decreasing.
	PasteCount int `json:"paste_count"`
}
