// SPDX-License-Identifier: Apache-2.0

// Package syncengine implements the encrypted multi-device clipboard sync
// core: the wire codec, the deterministic conflict resolver, and the
// coordinator driving the push/pull protocol against a remote change feed.
package syncengine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cliphist/clipsync/internal/history"
	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/models"
)

const (
	defaultPushBatchLimit = 50
	maxTrackedDevices     = 16
)

// Config carries the per-device coordinator settings.
type Config struct {
	// DeviceID uniquely identifies this device; pulled records carrying
	// the same id are suppressed as self-echoes.
	DeviceID string

	// DeviceName is the human-readable device name stamped on records.
	DeviceName string

	// CanOriginateWrites is false for read-only companion devices, which
	// pull remote changes but never enqueue or push local ones. The same
	// binary runs in either role.
	CanOriginateWrites bool

	// EncryptPayloads runs record content through the encryption engine
	// before it leaves the device.
	EncryptPayloads bool

	// PushBatchLimit bounds how many pending changes one push submits.
	// The feed may still acknowledge fewer. Zero means the default.
	PushBatchLimit int

	// SyncInterval, when positive, triggers a periodic sync cycle from
	// Run in addition to opportunistic flushes.
	SyncInterval time.Duration

	// QueuePath and CheckpointPath locate the durable state files.
	// Empty paths keep the corresponding state in memory only.
	QueuePath      string
	CheckpointPath string
}

// Coordinator owns the pending-change queue, the sync checkpoint, and the
// device bookkeeping, and drives the push/pull protocol.
//
// All state is serialized through one mutex: concurrent callers enqueue
// changes and read status, while network cycles run on the Run goroutine
// and reacquire the lock only to apply results. A session counter guards
// against in-flight batches of a torn-down session mutating state: their
// acknowledgments are discarded and the affected changes simply stay
// queued.
type Coordinator struct {
	cfg     Config
	feed    RemoteFeed
	history history.Store
	codec   *Codec
	logger  *logger.Logger

	syncCh chan struct{}

	mu         sync.Mutex
	state      models.SyncState
	lastSynced time.Time
	devices    []string
	queue      *pendingQueue
	checkpoint *checkpointFile
	versions   map[uuid.UUID]string // last seen server change tag per record
	session    uint64
}

// NewCoordinator constructs a Coordinator and loads its durable state
// (pending queue and checkpoint). The coordinator starts disabled; call
// [Coordinator.Enable] and run [Coordinator.Run] to begin syncing.
func NewCoordinator(cfg Config, feed RemoteFeed, store history.Store, codec *Codec, log *logger.Logger) (*Coordinator, error) {
	if cfg.DeviceID == "" {
		return nil, errors.New("coordinator: device id is required")
	}
	if cfg.PushBatchLimit <= 0 {
		cfg.PushBatchLimit = defaultPushBatchLimit
	}

	queue, err := openPendingQueue(cfg.QueuePath)
	if err != nil {
		return nil, fmt.Errorf("open pending queue: %w", err)
	}
	checkpoint, err := openCheckpointFile(cfg.CheckpointPath)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint: %w", err)
	}

	return &Coordinator{
		cfg:        cfg,
		feed:       feed,
		history:    store,
		codec:      codec,
		logger:     log,
		syncCh:     make(chan struct{}, 1),
		state:      models.SyncDisabled,
		queue:      queue,
		checkpoint: checkpoint,
		versions:   make(map[uuid.UUID]string),
	}, nil
}

// Enable opens a feed session seeded with the persisted checkpoint,
// ensures the sync zone exists, and starts syncing. Calling Enable while
// already running is a no-op.
func (c *Coordinator) Enable(ctx context.Context) error {
	c.mu.Lock()
	if c.state == models.SyncSyncing || c.state == models.SyncIdle {
		c.mu.Unlock()
		return nil
	}
	c.session++
	checkpoint := c.checkpoint.current()
	c.mu.Unlock()

	if err := c.openSession(ctx, checkpoint); err != nil {
		return err
	}

	c.setState(models.SyncSyncing)
	c.logger.Info().Str("device_id", c.cfg.DeviceID).Msg("sync enabled")
	c.trigger()
	return nil
}

// Disable tears down the feed session. The checkpoint and pending queue
// survive, so re-enabling resumes where sync left off. Any in-flight batch
// is abandoned; its pending changes stay queued.
func (c *Coordinator) Disable() {
	c.mu.Lock()
	if c.state == models.SyncDisabled {
		c.mu.Unlock()
		return
	}
	c.session++
	c.state = models.SyncDisabled
	c.mu.Unlock()

	c.feed.Close()
	c.logger.Info().Msg("sync disabled")
}

// QueueSave records the intent to sync the current local version of the
// entry. The enqueue is persisted durably before any network I/O happens.
func (c *Coordinator) QueueSave(id uuid.UUID) error {
	return c.queueChange(id, models.ChangeSave)
}

// QueueDelete records the intent to tombstone the entry remotely. A queued
// un-sent save for the same id is superseded rather than sent alongside.
func (c *Coordinator) QueueDelete(id uuid.UUID) error {
	return c.queueChange(id, models.ChangeDelete)
}

func (c *Coordinator) queueChange(id uuid.UUID, op models.ChangeOp) error {
	if !c.cfg.CanOriginateWrites {
		c.logger.Debug().Stringer("id", id).Msg("read-only device, change not queued")
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == models.SyncDisabled {
		return nil
	}

	change := models.PendingChange{ID: id, Op: op, BaseVersion: c.versions[id]}
	if err := c.queue.enqueue(change); err != nil {
		return fmt.Errorf("enqueue %s for %s: %w", op, id, err)
	}

	c.logger.Debug().Stringer("id", id).Str("op", string(op)).Msg("change queued")
	if c.state == models.SyncSyncing || c.state == models.SyncIdle {
		c.trigger()
	}
	return nil
}

// SyncNow requests a sync cycle. Non-blocking; cycles run on the Run
// goroutine.
func (c *Coordinator) SyncNow() {
	c.trigger()
}

// Status returns a snapshot of the observable sync state.
func (c *Coordinator) Status() models.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	devices := make([]string, len(c.devices))
	copy(devices, c.devices)

	return models.SyncStatus{
		State:            c.state,
		LastSyncedAt:     c.lastSynced,
		ConnectedDevices: devices,
		PendingChanges:   c.queue.depth(),
	}
}

// Run is the coordinator's owner loop: it executes sync cycles and applies
// account-lifecycle events until ctx is cancelled. Exactly one Run must be
// active per coordinator.
func (c *Coordinator) Run(ctx context.Context) {
	var tick <-chan time.Time
	if c.cfg.SyncInterval > 0 {
		ticker := time.NewTicker(c.cfg.SyncInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	events := c.feed.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.syncCh:
			c.syncCycle(ctx)
		case <-tick:
			c.syncCycle(ctx)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			c.handleAccountEvent(ctx, ev)
		}
	}
}

// ── Sync cycle ───────────────────────────────────────────────────────────────

func (c *Coordinator) syncCycle(ctx context.Context) {
	c.mu.Lock()
	switch c.state {
	case models.SyncSyncing, models.SyncIdle, models.SyncError:
		// Error is transient: the next triggered cycle is the retry.
	default:
		c.mu.Unlock()
		return
	}
	session := c.session
	c.state = models.SyncSyncing
	c.mu.Unlock()

	if err := c.pushCycle(ctx, session); err != nil {
		c.failCycle(session, err)
		return
	}
	if err := c.pullCycle(ctx, session); err != nil {
		c.failCycle(session, err)
		return
	}

	c.mu.Lock()
	if c.session == session {
		c.state = models.SyncIdle
		c.lastSynced = time.Now()
	}
	c.mu.Unlock()
}

// failCycle maps a cycle error onto the observable state. Transport errors
// are transient; pending changes stay queued for the next triggered cycle.
func (c *Coordinator) failCycle(session uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != session {
		return
	}
	if errors.Is(err, ErrAccountUnavailable) {
		c.state = models.SyncNoAccount
	} else {
		c.state = models.SyncError
	}
	c.logger.Warn().Err(err).Str("state", string(c.state)).Msg("sync cycle failed")
}

// pushCycle builds a batch from the pending queue, submits it, and applies
// the per-record outcomes.
func (c *Coordinator) pushCycle(ctx context.Context, session uint64) error {
	if !c.cfg.CanOriginateWrites {
		return nil
	}

	c.mu.Lock()
	batch := c.queue.next(c.cfg.PushBatchLimit)
	c.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	items := make([]models.PushItem, 0, len(batch))
	for _, change := range batch {
		item, ok, err := c.buildPushItem(ctx, change)
		if err != nil {
			return err
		}
		if ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}

	outcomes, err := c.feed.Push(ctx, models.PushRequest{
		DeviceID: c.cfg.DeviceID,
		Items:    items,
		Length:   len(items),
	})
	if err != nil {
		return fmt.Errorf("push batch: %w", err)
	}

	return c.applyPushOutcomes(ctx, session, outcomes)
}

// buildPushItem turns a pending change into an outbound slot. For a save
// whose entry has meanwhile vanished locally there is nothing to send: the
// change is dropped. Encryption failures abort the cycle; content is
// never silently pushed in plaintext.
func (c *Coordinator) buildPushItem(ctx context.Context, change models.PendingChange) (models.PushItem, bool, error) {
	if change.Op == models.ChangeDelete {
		return models.PushItem{Change: change}, true, nil
	}

	item, err := c.history.ItemByID(ctx, change.ID)
	if errors.Is(err, history.ErrItemNotFound) {
		c.logger.Debug().Stringer("id", change.ID).Msg("queued save for vanished entry, dropping")
		c.mu.Lock()
		ackErr := c.queue.ack(change.ID)
		c.mu.Unlock()
		return models.PushItem{}, false, ackErr
	}
	if err != nil {
		return models.PushItem{}, false, fmt.Errorf("load entry %s: %w", change.ID, err)
	}

	record, err := c.codec.Encode(item, c.cfg.DeviceID, c.cfg.DeviceName, c.cfg.EncryptPayloads)
	if err != nil {
		return models.PushItem{}, false, fmt.Errorf("encode entry %s: %w", change.ID, err)
	}
	record.Version = change.BaseVersion

	return models.PushItem{Change: change, Record: &record}, true, nil
}

// applyPushOutcomes processes per-record acknowledgments. Outcomes of an
// abandoned session are discarded wholesale; the affected changes are
// still queued and will be retried by the next session.
func (c *Coordinator) applyPushOutcomes(ctx context.Context, session uint64, outcomes []models.PushOutcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != session {
		return nil
	}

	for _, outcome := range outcomes {
		switch outcome.Status {
		case models.OutcomeSaved:
			if err := c.queue.ack(outcome.ID); err != nil {
				return err
			}
			c.versions[outcome.ID] = outcome.Version

		case models.OutcomeConflict:
			if err := c.resolveConflictLocked(ctx, outcome); err != nil {
				return err
			}

		case models.OutcomeFailed:
			// Left queued; the next triggered cycle retries. No tight
			// local retry loop.
			c.logger.Warn().Stringer("id", outcome.ID).Str("error", outcome.Error).Msg("record save failed, will retry")
		}
	}
	return nil
}

// resolveConflictLocked handles a conflict acknowledgment: it rebuilds the
// record from current local state, asks the resolver to pick a winner, and
// either re-enqueues a save carrying the server's version tag (local win)
// or silently drops the local attempt (remote win, the next pull delivers
// the authoritative content). Called with c.mu held.
func (c *Coordinator) resolveConflictLocked(ctx context.Context, outcome models.PushOutcome) error {
	server := outcome.ServerRecord
	if server == nil {
		c.logger.Warn().Stringer("id", outcome.ID).Msg("conflict outcome without server record, will retry")
		return nil
	}
	c.versions[outcome.ID] = server.Version

	item, err := c.history.ItemByID(ctx, outcome.ID)
	if errors.Is(err, history.ErrItemNotFound) {
		// Nothing local to defend; accept the server copy.
		return c.queue.ack(outcome.ID)
	}
	if err != nil {
		return fmt.Errorf("load conflicted entry %s: %w", outcome.ID, err)
	}

	local, err := c.codec.Encode(item, c.cfg.DeviceID, c.cfg.DeviceName, c.cfg.EncryptPayloads)
	if err != nil {
		return fmt.Errorf("encode conflicted entry %s: %w", outcome.ID, err)
	}

	if Resolve(local, *server) == WinnerRemote {
		c.logger.Debug().Stringer("id", outcome.ID).Msg("conflict: server wins, dropping local attempt")
		return c.queue.ack(outcome.ID)
	}

	merged := MergeForResubmission(local, *server)
	c.logger.Debug().Stringer("id", outcome.ID).Msg("conflict: local wins, resubmitting with server version")
	if err = c.queue.enqueue(models.PendingChange{
		ID:          outcome.ID,
		Op:          models.ChangeSave,
		BaseVersion: merged.Version,
	}); err != nil {
		return err
	}
	c.trigger()
	return nil
}

// pullCycle drains inbound batches since the last checkpoint.
func (c *Coordinator) pullCycle(ctx context.Context, session uint64) error {
	for {
		c.mu.Lock()
		checkpoint := c.checkpoint.current()
		c.mu.Unlock()

		result, err := c.feed.Pull(ctx, checkpoint)
		if err != nil {
			return fmt.Errorf("pull changes: %w", err)
		}

		if err = c.applyPullResult(ctx, session, result); err != nil {
			return err
		}
		if !result.More {
			return nil
		}
	}
}

// applyPullResult applies one inbound batch: decodes modifications (a
// record that fails to decode is logged and skipped, never batch-fatal),
// suppresses self-echoes, upserts into local history, applies tombstones,
// and persists the advanced checkpoint.
func (c *Coordinator) applyPullResult(ctx context.Context, session uint64, result models.PullResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != session {
		return nil
	}

	for _, record := range result.Modifications {
		c.versions[record.ID] = record.Version

		if record.DeviceID == c.cfg.DeviceID {
			// Echo of our own earlier push.
			continue
		}

		item, err := c.codec.Decode(record)
		if err != nil {
			c.logger.Warn().Err(err).Stringer("id", record.ID).Msg("skipping undecodable record")
			continue
		}

		c.noteDeviceLocked(record.DeviceName)

		existing, err := c.history.ItemByID(ctx, record.ID)
		switch {
		case errors.Is(err, history.ErrItemNotFound):
			// First sight of this entry locally.
		case err != nil:
			c.logger.Warn().Err(err).Stringer("id", record.ID).Msg("history lookup failed, skipping record")
			continue
		case record.Timestamp.After(existing.Timestamp):
			// A strictly newer remote version replaces the local copy,
			// e.g. after the other side won a push conflict.
		default:
			// Existing local entry stands; push-side resolution owns
			// true conflicts.
			continue
		}

		if err = c.history.InsertSyncedItem(ctx, item); err != nil {
			c.logger.Warn().Err(err).Stringer("id", record.ID).Msg("failed to store synced record")
			continue
		}
		c.logger.Debug().Stringer("id", record.ID).Str("device", record.DeviceName).Msg("synced record stored")
	}

	for _, id := range result.Deletions {
		delete(c.versions, id)
		if err := c.history.DeleteSyncedItem(ctx, id); err != nil {
			c.logger.Warn().Err(err).Stringer("id", id).Msg("failed to apply tombstone")
		}
	}

	if err := c.checkpoint.save(result.Checkpoint); err != nil {
		return err
	}
	c.lastSynced = time.Now()
	return nil
}

// ── Account lifecycle ────────────────────────────────────────────────────────

func (c *Coordinator) handleAccountEvent(ctx context.Context, ev models.AccountEvent) {
	switch ev.Kind {
	case models.AccountSignOut:
		c.mu.Lock()
		if c.state != models.SyncDisabled {
			c.session++
			c.state = models.SyncNoAccount
		}
		c.mu.Unlock()
		c.logger.Info().Msg("account signed out, sync halted")

	case models.AccountSignIn:
		c.mu.Lock()
		resumed := c.state == models.SyncNoAccount
		if resumed {
			c.state = models.SyncIdle
		}
		c.mu.Unlock()
		if resumed {
			c.logger.Info().Msg("account signed in, sync resumed")
			c.trigger()
		}

	case models.AccountSwitched:
		// The checkpoint and device cache belong to the old account;
		// restart the session from scratch against the new one.
		c.mu.Lock()
		if c.state == models.SyncDisabled {
			c.mu.Unlock()
			return
		}
		c.session++
		c.devices = nil
		c.versions = make(map[uuid.UUID]string)
		if err := c.checkpoint.clear(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to clear checkpoint on account switch")
		}
		c.mu.Unlock()

		c.feed.Close()
		c.logger.Info().Msg("account switched, restarting sync session")
		if err := c.openSession(ctx, nil); err != nil {
			return
		}
		c.setState(models.SyncSyncing)
		c.trigger()
	}
}

// openSession opens the feed session and ensures the zone, mapping errors
// onto the observable state.
func (c *Coordinator) openSession(ctx context.Context, checkpoint []byte) error {
	if err := c.feed.Open(ctx, c.cfg.DeviceID, c.cfg.DeviceName, checkpoint); err != nil {
		c.failSession(err)
		return fmt.Errorf("open feed session: %w", err)
	}
	if err := c.feed.EnsureZone(ctx); err != nil {
		c.failSession(err)
		return fmt.Errorf("ensure sync zone: %w", err)
	}
	return nil
}

func (c *Coordinator) failSession(err error) {
	if errors.Is(err, ErrAccountUnavailable) {
		c.setState(models.SyncNoAccount)
	} else {
		c.setState(models.SyncError)
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (c *Coordinator) setState(state models.SyncState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// trigger requests a cycle without blocking; a cycle already requested is
// enough.
func (c *Coordinator) trigger() {
	select {
	case c.syncCh <- struct{}{}:
	default:
	}
}

// noteDeviceLocked records a device name, most recent first, deduplicated
// and capped. Called with c.mu held.
func (c *Coordinator) noteDeviceLocked(name string) {
	if name == "" {
		return
	}

	devices := make([]string, 0, len(c.devices)+1)
	devices = append(devices, name)
	for _, existing := range c.devices {
		if existing != name {
			devices = append(devices, existing)
		}
	}
	if len(devices) > maxTrackedDevices {
		devices = devices[:maxTrackedDevices]
	}
	c.devices = devices
}
