// SPDX-License-Identifier: Apache-2.0

package syncengine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cliphist/clipsync/internal/crypto"
	"github.com/cliphist/clipsync/models"
)

// Codec maps clipboard entries to and from canonical wire records,
// optionally running the payload through the encryption engine.
//
// Encode and Decode are pure mappings of their inputs; the only injected
// state is the cipher and, at encode time, whether encryption is enabled.
type Codec struct {
	cipher crypto.Engine
}

// NewCodec constructs a [Codec] over the given encryption engine.
func NewCodec(cipher crypto.Engine) *Codec {
	return &Codec{cipher: cipher}
}

// Encode serializes item.Content, encrypts the bytes when encrypt is true,
// and stamps the remaining scalar fields. The content-type tag is stamped
// in plaintext either way so receivers can filter without decrypting.
func (c *Codec) Encode(item models.ClipboardItem, deviceID, deviceName string, encrypt bool) (models.SyncRecord, error) {
	content, err := json.Marshal(item.Content)
	if err != nil {
		return models.SyncRecord{}, fmt.Errorf("encode content: %w", err)
	}

	if encrypt {
		if content, err = c.cipher.Encrypt(content); err != nil {
			return models.SyncRecord{}, fmt.Errorf("encrypt content: %w", err)
		}
	}

	return models.SyncRecord{
		Kind:              models.RecordKind,
		ID:                item.ID,
		Content:           content,
		ContentType:       item.Content.Type,
		Encrypted:         encrypt,
		Timestamp:         item.Timestamp,
		SourceAppBundleID: item.SourceAppBundleID,
		SourceAppName:     item.SourceAppName,
		PasteCount:        item.PasteCount,
		DeviceID:          deviceID,
		DeviceName:        deviceName,
	}, nil
}

// Decode validates a wire record and recovers the clipboard entry,
// decrypting the payload when the record's encrypted flag is set.
//
// Every returned error wraps one of the package sentinels
// ([ErrWrongRecordKind], [ErrMissingField], [ErrInvalidRecordID],
// [ErrCorruptContent]) or [crypto.ErrDecryptionFailed]; all of them mean
// "drop and log this one record", never "abort the batch".
func (c *Codec) Decode(record models.SyncRecord) (models.ClipboardItem, error) {
	if record.Kind != models.RecordKind {
		return models.ClipboardItem{}, fmt.Errorf("%w: %q", ErrWrongRecordKind, record.Kind)
	}
	if record.ID == uuid.Nil {
		return models.ClipboardItem{}, fmt.Errorf("%w: nil uuid", ErrInvalidRecordID)
	}
	if len(record.Content) == 0 {
		return models.ClipboardItem{}, fmt.Errorf("%w: content", ErrMissingField)
	}
	if record.Timestamp.IsZero() {
		return models.ClipboardItem{}, fmt.Errorf("%w: timestamp", ErrMissingField)
	}

	payload := record.Content
	if record.Encrypted {
		// A record we cannot decrypt (missing or rotated key) is
		// unreadable, not malformed; the decryption sentinel is
		// surfaced as-is.
		var err error
		if payload, err = c.cipher.Decrypt(payload); err != nil {
			return models.ClipboardItem{}, fmt.Errorf("decrypt record %s: %w", record.ID, err)
		}
	}

	var content models.ClipboardContent
	if err := json.Unmarshal(payload, &content); err != nil {
		return models.ClipboardItem{}, fmt.Errorf("%w: %w", ErrCorruptContent, err)
	}

	return models.ClipboardItem{
		ID:                record.ID,
		Content:           content,
		Timestamp:         record.Timestamp,
		SourceAppBundleID: record.SourceAppBundleID,
		SourceAppName:     record.SourceAppName,
		PasteCount:        record.PasteCount,
	}, nil
}
