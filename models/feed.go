// SPDX-License-Identifier: Apache-2.0

package models

import "github.com/google/uuid"

// PushItem is one outbound change slot in a push batch: the pending intent
// plus, for saves, the encoded record built from current local state.
// Record is nil for deletes; the feed stores a tombstone keyed by
// Change.ID instead.
type PushItem struct {
	Change PendingChange `json:"change"`
	Record *SyncRecord   `json:"record,omitempty"`
}

// PushRequest is the batch a device submits to the feed.
type PushRequest struct {
	// DeviceID identifies the submitting device.
	DeviceID string `json:"device_id"`

	// Items are the outbound change slots.
	Items []PushItem `json:"items"`

	// Length is the number of entries in Items, provided so the server
	// can validate the batch without iterating it.
	Length int `json:"length"`
}

// OutcomeStatus classifies the feed's per-record answer to a push.
type OutcomeStatus string

const (
	// OutcomeSaved means the record (or tombstone) was stored and the
	// pending change may be dequeued.
	OutcomeSaved OutcomeStatus = "saved"

	// OutcomeConflict means the server holds a different version than the
	// push was based on. ServerRecord carries the stored copy so the
	// device can resolve the conflict.
	OutcomeConflict OutcomeStatus = "conflict"

	// OutcomeFailed means a non-conflict error occurred for this record.
	// The pending change stays queued and is retried on a later cycle.
	OutcomeFailed OutcomeStatus = "failed"
)

// PushOutcome is the feed's per-record acknowledgment.
//
// The feed may acknowledge only a subset of the submitted batch (it pages
// at its own pace); items without an outcome remain pending on the device.
type PushOutcome struct {
	// ID is the record the outcome refers to.
	ID uuid.UUID `json:"id"`

	// Status is saved, conflict, or failed.
	Status OutcomeStatus `json:"status"`

	// Version is the new server change tag, set when Status is saved.
	Version string `json:"version,omitempty"`

	// ServerRecord is the server's stored copy, set when Status is
	// conflict.
	ServerRecord *SyncRecord `json:"server_record,omitempty"`

	// Error is a human-readable description, set when Status is failed.
	Error string `json:"error,omitempty"`
}

// PushResponse is the feed's answer to a [PushRequest].
type PushResponse struct {
	Outcomes []PushOutcome `json:"outcomes"`
	Length   int           `json:"length"`
}

// PullResult is one inbound batch of remote changes since a checkpoint.
type PullResult struct {
	// Modifications are new or changed records, including tombstoned
	// records' final saves from other devices.
	Modifications []SyncRecord `json:"modifications"`

	// Deletions are the ids of records tombstoned since the checkpoint.
	Deletions []uuid.UUID `json:"deletions"`

	// Checkpoint is the opaque continuation token to persist after the
	// batch is applied. Its structure belongs to the feed, not to the
	// coordinator.
	Checkpoint []byte `json:"checkpoint"`

	// More reports whether further batches are immediately available.
	More bool `json:"more"`
}

// AccountEventKind enumerates account-lifecycle transitions reported by the
// remote feed.
type AccountEventKind string

const (
	AccountSignIn   AccountEventKind = "sign_in"
	AccountSignOut  AccountEventKind = "sign_out"
	AccountSwitched AccountEventKind = "switched"
)

// AccountEvent is an account-lifecycle notification from the feed. On a
// switch the coordinator must discard its checkpoint and device cache: the
// old continuation state is meaningless against the new account.
type AccountEvent struct {
	Kind AccountEventKind `json:"kind"`
}
