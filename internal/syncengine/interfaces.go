package syncengine

import (
	"context"

	"github.com/cliphist/clipsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_feed_mock.go -package=mock

// RemoteFeed abstracts the remote change feed the coordinator pushes to and
// pulls from. The reference implementation speaks HTTP to the clipsync
// server (internal/adapter); any backend that supports per-record version
// tokens for conflict detection can stand behind this interface.
//
// All methods taking a context may suspend for arbitrary network latency.
type RemoteFeed interface {
	// Open establishes a session for the device, seeded with the last
	// persisted checkpoint (nil on first run). Returns
	// [ErrAccountUnavailable] when no account is signed in.
	Open(ctx context.Context, deviceID, deviceName string, checkpoint []byte) error

	// EnsureZone idempotently creates the logical record namespace.
	EnsureZone(ctx context.Context) error

	// Push submits a batch of saves and tombstones. The feed answers
	// with per-record outcomes and may acknowledge only a subset of the
	// batch; unacknowledged items must remain pending on the device.
	Push(ctx context.Context, req models.PushRequest) ([]models.PushOutcome, error)

	// Pull returns modifications and deletions recorded since the given
	// checkpoint along with the next checkpoint to persist.
	Pull(ctx context.Context, checkpoint []byte) (models.PullResult, error)

	// Events delivers account-lifecycle notifications. The channel stays
	// open for the lifetime of the feed.
	Events() <-chan models.AccountEvent

	// Close tears down the session. In-flight batches are abandoned;
	// their pending changes stay queued for the next session.
	Close()
}
