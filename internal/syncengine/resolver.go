// SPDX-License-Identifier: Apache-2.0

package syncengine

import "github.com/cliphist/clipsync/models"

// Winner names the side a conflict resolution picked.
type Winner string

const (
	WinnerLocal  Winner = "local"
	WinnerRemote Winner = "remote"
)

// Resolve decides between two candidate versions of the same logical
// record using last-write-wins over the capture timestamps. A strictly
// newer local timestamp wins; otherwise, including exact equality, the
// remote copy wins. Favoring the server on ties guarantees termination and
// prevents two devices with identical clocks from oscillating.
//
// Resolve is a pure function of the two timestamps: no I/O, no side
// effects, no other fields consulted.
func Resolve(local, remote models.SyncRecord) Winner {
	if local.Timestamp.After(remote.Timestamp) {
		return WinnerLocal
	}
	return WinnerRemote
}

// MergeForResubmission builds the record to re-upload after the local side
// won a conflict: the local content and fields, carrying the server's
// version tag so the feed accepts the resubmission as an update of the
// stored copy rather than rejecting it as stale. The resolver itself never
// touches storage metadata; this merge is the caller's half of the
// protocol.
func MergeForResubmission(local, server models.SyncRecord) models.SyncRecord {
	merged := local
	merged.Version = server.Version
	return merged
}
