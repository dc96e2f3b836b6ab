package models

import "time"

// SyncState is the small user-visible sync status enumeration. No raw error
// text is attached; the category alone must be distinguishable.
type SyncState string

const (
	// SyncDisabled means sync has never been enabled or was explicitly
	// turned off. The pending queue and checkpoint survive a disable so
	// re-enabling resumes where it left off.
	SyncDisabled SyncState = "disabled"

	// SyncIdle means the engine is running with no cycle in flight.
	SyncIdle SyncState = "idle"

	// SyncSyncing means a push or pull cycle is in progress.
	SyncSyncing SyncState = "syncing"

	// SyncError means the last cycle hit a transport failure. The state
	// is transient; the next triggered cycle retries.
	SyncError SyncState = "error"

	// SyncNoAccount means the feed reports no signed-in account. Local
	// clipboard operation continues unaffected; sync is strictly
	// additive.
	SyncNoAccount SyncState = "no_account"
)

// SyncStatus is the observable snapshot exposed by the coordinator.
type SyncStatus struct {
	// State is the current coarse engine state.
	State SyncState `json:"state"`

	// LastSyncedAt is the completion time of the last successful push or
	// pull batch; zero if the device has never synced.
	LastSyncedAt time.Time `json:"last_synced_at,omitzero"`

	// ConnectedDevices lists the names of devices whose records this
	// device has seen, most recent first.
	ConnectedDevices []string `json:"connected_devices,omitempty"`

	// PendingChanges is the current depth of the outbound queue.
	PendingChanges int `json:"pending_changes"`
}
