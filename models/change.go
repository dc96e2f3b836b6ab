package models

import "github.com/google/uuid"

// ChangeOp enumerates the two pending-change intents.
type ChangeOp string

const (
	// ChangeSave asks the feed to store the current local version of the
	// record.
	ChangeSave ChangeOp = "save"

	// ChangeDelete asks the feed to store a tombstone for the record.
	ChangeDelete ChangeOp = "delete"
)

// PendingChange is an in-flight sync intent for one record.
//
// Lifecycle: created when local history mutates while sync is enabled,
// removed only upon confirmed remote acknowledgment, and re-created with
// the server's version tag when conflict resolution decides the local copy
// should still win. A later delete supersedes an earlier un-sent save for
// the same id.
type PendingChange struct {
	// ID is the logical record identifier the change applies to.
	ID uuid.UUID `json:"id"`

	// Op is the intent: save or delete.
	Op ChangeOp `json:"op"`

	// BaseVersion is the server change tag this push is based on. It is
	// empty for first-time saves and is set to the server's tag after a
	// conflict the local side won, so the resubmission is accepted as an
	// update rather than rejected as stale.
	BaseVersion string `json:"base_version,omitempty"`
}
