// SPDX-License-Identifier: Apache-2.0

package models

import (
	"time"

	"github.com/google/uuid"
)

// RecordKind is the type tag every synchronized clipboard record carries on
// the wire. Readers reject records with any other kind.
const RecordKind = "ClipboardItem"

// ZoneName is the logical namespace within the remote feed that scopes this
// application's records. The zone is created idempotently on first sync
// enable.
const ZoneName = "ClipboardItems"

// SyncRecord is the canonical synchronized unit: one clipboard entry in
// wire form. Content holds the serialized [ClipboardContent] bytes and is
// opaque to the feed; when Encrypted is true those bytes are the output of
// the encryption engine's seal operation and only devices holding the same
// key can read them.
type SyncRecord struct {
	// Kind is always [RecordKind]. Carried explicitly so receivers can
	// reject foreign records sharing the zone.
	Kind string `json:"kind"`

	// ID is the logical entry identifier; also the remote record key.
	ID uuid.UUID `json:"id"`

	// Content is the serialized (and possibly encrypted) payload.
	Content []byte `json:"content"`

	// ContentType is the plaintext "text"/"image" hint. It is never
	// encrypted so that receivers can filter without decrypting.
	ContentType string `json:"content_type"`

	// Encrypted tells a reader whether Content must be run through the
	// encryption engine before being parsed. It travels outside the
	// encrypted envelope.
	Encrypted bool `json:"encrypted"`

	// Timestamp is the capture time used as the conflict-resolution key.
	Timestamp time.Time `json:"timestamp"`

	// SourceAppBundleID and SourceAppName are optional provenance hints.
	SourceAppBundleID string `json:"source_app_bundle_id,omitempty"`
	SourceAppName     string `json:"source_app_name,omitempty"`

	// PasteCount mirrors the local usage counter at encode time.
	PasteCount int `json:"paste_count"`

	// DeviceID identifies the originating device so that devices can
	// suppress echoes of their own writes on pull.
	DeviceID string `json:"device_id"`

	// DeviceName is the human-readable originating device name.
	DeviceName string `json:"device_name"`

	// Version is the feed's opaque per-record change tag. The server
	// assigns it on every accepted save; a push must present the version
	// it last saw or the server reports a conflict. Empty for records
	// that were never stored remotely.
	Version string `json:"version,omitempty"`
}
