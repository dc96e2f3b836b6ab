// SPDX-License-Identifier: Apache-2.0

package syncengine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliphist/clipsync/internal/crypto"
	"github.com/cliphist/clipsync/internal/history"
	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/secret"
	"github.com/cliphist/clipsync/models"
)

// fakeFeed is a scriptable in-memory RemoteFeed.
type fakeFeed struct {
	mu      sync.Mutex
	openErr error
	zoneErr error
	pushErr error
	pullErr error

	// pushFn, when set, computes outcomes per request; otherwise every
	// item is acknowledged as saved with a fresh version tag.
	pushFn func(models.PushRequest) []models.PushOutcome

	// pulls are consumed one per Pull call; when exhausted, Pull answers
	// with an empty batch echoing the caller's checkpoint.
	pulls []models.PullResult

	pushes []models.PushRequest
	opens  [][]byte
	closes int
	serial int
	events chan models.AccountEvent
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{events: make(chan models.AccountEvent, 4)}
}

func (f *fakeFeed) Open(_ context.Context, _, _ string, checkpoint []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens = append(f.opens, checkpoint)
	return f.openErr
}

func (f *fakeFeed) EnsureZone(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.zoneErr
}

func (f *fakeFeed) Push(_ context.Context, req models.PushRequest) ([]models.PushOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pushes = append(f.pushes, req)
	if f.pushErr != nil {
		return nil, f.pushErr
	}
	if f.pushFn != nil {
		return f.pushFn(req), nil
	}

	outcomes := make([]models.PushOutcome, 0, len(req.Items))
	for _, item := range req.Items {
		f.serial++
		outcomes = append(outcomes, models.PushOutcome{
			ID:      item.Change.ID,
			Status:  models.OutcomeSaved,
			Version: fmt.Sprintf("v%d", f.serial),
		})
	}
	return outcomes, nil
}

func (f *fakeFeed) Pull(_ context.Context, checkpoint []byte) (models.PullResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pullErr != nil {
		return models.PullResult{}, f.pullErr
	}
	if len(f.pulls) == 0 {
		return models.PullResult{Checkpoint: checkpoint}, nil
	}

	result := f.pulls[0]
	f.pulls = f.pulls[1:]
	return result, nil
}

func (f *fakeFeed) Events() <-chan models.AccountEvent { return f.events }

func (f *fakeFeed) Close() {
	f.mu.Lock()
	f.closes++
	f.mu.Unlock()
}

func (f *fakeFeed) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func (f *fakeFeed) lastPush(t *testing.T) models.PushRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.pushes)
	return f.pushes[len(f.pushes)-1]
}

type coordinatorFixture struct {
	coord *Coordinator
	feed  *fakeFeed
	store history.Store
	codec *Codec
}

func newFixture(t *testing.T, mutate func(*Config)) *coordinatorFixture {
	t.Helper()

	feed := newFakeFeed()
	store := history.NewMemoryStore()
	codec := NewCodec(crypto.NewEngine(secret.NewMemoryStore()))

	cfg := Config{
		DeviceID:           "device-a",
		DeviceName:         "Laptop",
		CanOriginateWrites: true,
		PushBatchLimit:     10,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	coord, err := NewCoordinator(cfg, feed, store, codec, logger.Nop())
	require.NoError(t, err)

	return &coordinatorFixture{coord: coord, feed: feed, store: store, codec: codec}
}

func (fx *coordinatorFixture) lastPush(t *testing.T) models.PushRequest {
	t.Helper()
	return fx.feed.lastPush(t)
}

func (fx *coordinatorFixture) addItem(t *testing.T, text string, ts time.Time) models.ClipboardItem {
	t.Helper()
	item := models.ClipboardItem{
		ID:        uuid.New(),
		Content:   models.TextContent(text),
		Timestamp: ts,
	}
	require.NoError(t, fx.store.SaveCaptured(context.Background(), item))
	return item
}

func (fx *coordinatorFixture) enableAndSync(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, fx.coord.Enable(ctx))
	fx.coord.syncCycle(ctx)
}

func remoteRecord(t *testing.T, codec *Codec, item models.ClipboardItem, deviceID, deviceName, version string) models.SyncRecord {
	t.Helper()
	record, err := codec.Encode(item, deviceID, deviceName, false)
	require.NoError(t, err)
	record.Version = version
	return record
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestCoordinatorStartsDisabled(t *testing.T) {
	fx := newFixture(t, nil)

	status := fx.coord.Status()
	assert.Equal(t, models.SyncDisabled, status.State)
	assert.True(t, status.LastSyncedAt.IsZero())
}

func TestCoordinatorEnable(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	status := fx.coord.Status()
	assert.Equal(t, models.SyncIdle, status.State)
	assert.False(t, status.LastSyncedAt.IsZero())
	require.Len(t, fx.feed.opens, 1)
	assert.Nil(t, fx.feed.opens[0], "first run opens with no checkpoint")
}

func TestCoordinatorEnableWhileRunningIsNoop(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	require.NoError(t, fx.coord.Enable(context.Background()))
	assert.Len(t, fx.feed.opens, 1)
}

func TestCoordinatorEnableWithoutAccount(t *testing.T) {
	fx := newFixture(t, nil)
	fx.feed.openErr = ErrAccountUnavailable

	err := fx.coord.Enable(context.Background())
	require.ErrorIs(t, err, ErrAccountUnavailable)
	assert.Equal(t, models.SyncNoAccount, fx.coord.Status().State)
}

func TestCoordinatorEnableZoneFailure(t *testing.T) {
	fx := newFixture(t, nil)
	fx.feed.zoneErr = ErrZoneUnavailable

	require.Error(t, fx.coord.Enable(context.Background()))
	assert.Equal(t, models.SyncError, fx.coord.Status().State)
}

func TestCoordinatorDisablePreservesState(t *testing.T) {
	dir := t.TempDir()
	fx := newFixture(t, func(cfg *Config) {
		cfg.QueuePath = dir + "/pending.json"
		cfg.CheckpointPath = dir + "/checkpoint"
	})
	fx.feed.pulls = []models.PullResult{{Checkpoint: []byte("cp-1")}}
	fx.enableAndSync(t)

	// Queue a change after the cycle so it stays pending through disable.
	item := fx.addItem(t, "pending", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))

	fx.coord.Disable()
	assert.Equal(t, models.SyncDisabled, fx.coord.Status().State)
	assert.Equal(t, 1, fx.coord.Status().PendingChanges)
	assert.Equal(t, 1, fx.feed.closes)

	// Re-enabling resumes from the persisted checkpoint.
	require.NoError(t, fx.coord.Enable(context.Background()))
	require.Len(t, fx.feed.opens, 2)
	assert.Equal(t, []byte("cp-1"), fx.feed.opens[1])
}

// ── Queueing ─────────────────────────────────────────────────────────────────

func TestCoordinatorQueueRequiresEnabled(t *testing.T) {
	fx := newFixture(t, nil)
	item := fx.addItem(t, "x", time.Now())

	require.NoError(t, fx.coord.QueueSave(item.ID))
	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
}

func TestCoordinatorReadOnlyDeviceNeverWrites(t *testing.T) {
	fx := newFixture(t, func(cfg *Config) { cfg.CanOriginateWrites = false })
	fx.enableAndSync(t)

	item := fx.addItem(t, "x", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))
	require.NoError(t, fx.coord.QueueDelete(item.ID))

	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
	fx.coord.syncCycle(context.Background())
	assert.Zero(t, fx.feed.pushCount())
}

// ── Push ─────────────────────────────────────────────────────────────────────

func TestCoordinatorPushSave(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	item := fx.addItem(t, "hello", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))
	fx.coord.syncCycle(context.Background())

	assert.Equal(t, 0, fx.coord.Status().PendingChanges)

	push := fx.lastPush(t)
	assert.Equal(t, "device-a", push.DeviceID)
	require.Len(t, push.Items, 1)
	require.NotNil(t, push.Items[0].Record)
	assert.Equal(t, item.ID, push.Items[0].Record.ID)
	assert.Empty(t, push.Items[0].Record.Version, "first save carries no base version")
}

func TestCoordinatorPushDeleteSendsTombstone(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	id := uuid.New()
	require.NoError(t, fx.coord.QueueDelete(id))
	fx.coord.syncCycle(context.Background())

	push := fx.lastPush(t)
	require.Len(t, push.Items, 1)
	assert.Equal(t, models.ChangeDelete, push.Items[0].Change.Op)
	assert.Nil(t, push.Items[0].Record)
	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
}

func TestCoordinatorPushUsesKnownVersion(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	item := fx.addItem(t, "first", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))
	fx.coord.syncCycle(context.Background())

	// The second save of the same entry must present the version tag the
	// first save was acknowledged with.
	require.NoError(t, fx.coord.QueueSave(item.ID))
	fx.coord.syncCycle(context.Background())

	push := fx.lastPush(t)
	require.Len(t, push.Items, 1)
	assert.Equal(t, "v1", push.Items[0].Record.Version)
}

func TestCoordinatorPushVanishedEntryDropped(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	require.NoError(t, fx.coord.QueueSave(uuid.New()))
	before := fx.feed.pushCount()
	fx.coord.syncCycle(context.Background())

	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
	assert.Equal(t, before, fx.feed.pushCount(), "nothing to push for a vanished entry")
}

func TestCoordinatorPushTransportErrorKeepsQueue(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	item := fx.addItem(t, "hello", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))

	fx.feed.pushErr = fmt.Errorf("connection reset")
	fx.coord.syncCycle(context.Background())

	assert.Equal(t, models.SyncError, fx.coord.Status().State)
	assert.Equal(t, 1, fx.coord.Status().PendingChanges)

	// The error state is transient: the next cycle retries and drains.
	fx.feed.pushErr = nil
	fx.coord.syncCycle(context.Background())
	assert.Equal(t, models.SyncIdle, fx.coord.Status().State)
	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
}

func TestCoordinatorPushFailedOutcomeStaysQueued(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	fx.feed.pushFn = func(req models.PushRequest) []models.PushOutcome {
		return []models.PushOutcome{{
			ID:     req.Items[0].Change.ID,
			Status: models.OutcomeFailed,
			Error:  "quota exceeded",
		}}
	}

	item := fx.addItem(t, "hello", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))
	fx.coord.syncCycle(context.Background())

	// No tight retry loop: exactly one attempt this cycle, change kept.
	assert.Equal(t, 1, fx.feed.pushCount())
	assert.Equal(t, 1, fx.coord.Status().PendingChanges)
	assert.Equal(t, models.SyncIdle, fx.coord.Status().State)
}

func TestCoordinatorPushPartialAcknowledgment(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	first := fx.addItem(t, "one", time.Now())
	second := fx.addItem(t, "two", time.Now())
	require.NoError(t, fx.coord.QueueSave(first.ID))
	require.NoError(t, fx.coord.QueueSave(second.ID))

	// The feed acknowledges only the first item of the batch.
	fx.feed.pushFn = func(req models.PushRequest) []models.PushOutcome {
		return []models.PushOutcome{{
			ID:      req.Items[0].Change.ID,
			Status:  models.OutcomeSaved,
			Version: "v1",
		}}
	}
	fx.coord.syncCycle(context.Background())

	assert.Equal(t, 1, fx.coord.Status().PendingChanges)
	remaining := fx.coord.queue.next(0)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)
}

func TestCoordinatorEncryptionFailureAbortsPush(t *testing.T) {
	fx := newFixture(t, func(cfg *Config) { cfg.EncryptPayloads = true })
	// A codec whose engine cannot obtain a key fails every seal.
	fx.coord.codec = NewCodec(crypto.NewEngine(brokenSecretStore{}))
	fx.enableAndSync(t)

	item := fx.addItem(t, "secret", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))
	fx.coord.syncCycle(context.Background())

	// Content is never silently pushed in plaintext; the change waits for
	// the key to become available.
	assert.Equal(t, models.SyncError, fx.coord.Status().State)
	assert.Equal(t, 1, fx.coord.Status().PendingChanges)
	assert.Zero(t, fx.feed.pushCount())
}

type brokenSecretStore struct{}

func (brokenSecretStore) Put(string, []byte) bool   { return false }
func (brokenSecretStore) Get(string) ([]byte, bool) { return nil, false }
func (brokenSecretStore) Delete(string) bool        { return false }
func (brokenSecretStore) Exists(string) bool        { return false }

// ── Conflicts ────────────────────────────────────────────────────────────────

func conflictOnce(fx *coordinatorFixture, server models.SyncRecord) {
	conflicted := false
	fx.feed.pushFn = func(req models.PushRequest) []models.PushOutcome {
		outcomes := make([]models.PushOutcome, 0, len(req.Items))
		for _, item := range req.Items {
			if !conflicted && item.Change.ID == server.ID {
				conflicted = true
				outcomes = append(outcomes, models.PushOutcome{
					ID:           item.Change.ID,
					Status:       models.OutcomeConflict,
					ServerRecord: &server,
				})
				continue
			}
			outcomes = append(outcomes, models.PushOutcome{
				ID:      item.Change.ID,
				Status:  models.OutcomeSaved,
				Version: "v-after-conflict",
			})
		}
		return outcomes
	}
}

func TestCoordinatorConflictLocalWins(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	now := time.Now()
	item := fx.addItem(t, "local and newer", now)

	other := models.ClipboardItem{ID: item.ID, Content: models.TextContent("remote and older"), Timestamp: now.Add(-time.Minute)}
	server := remoteRecord(t, fx.codec, other, "device-b", "Desktop", "srv-9")
	conflictOnce(fx, server)

	require.NoError(t, fx.coord.QueueSave(item.ID))
	fx.coord.syncCycle(context.Background())

	// The local copy won: the change was re-queued carrying the server's
	// version tag, ready for the next cycle.
	require.Equal(t, 1, fx.coord.Status().PendingChanges)
	queued := fx.coord.queue.next(0)
	require.Len(t, queued, 1)
	assert.Equal(t, "srv-9", queued[0].BaseVersion)

	// The retry is accepted.
	fx.coord.syncCycle(context.Background())
	require.Equal(t, 2, fx.feed.pushCount())
	retry := fx.lastPush(t)
	require.Len(t, retry.Items, 1)
	assert.Equal(t, "srv-9", retry.Items[0].Record.Version)
	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
}

func TestCoordinatorConflictRemoteWins(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	now := time.Now()
	item := fx.addItem(t, "local and older", now.Add(-time.Minute))

	other := models.ClipboardItem{ID: item.ID, Content: models.TextContent("remote and newer"), Timestamp: now}
	server := remoteRecord(t, fx.codec, other, "device-b", "Desktop", "srv-9")
	conflictOnce(fx, server)

	require.NoError(t, fx.coord.QueueSave(item.ID))
	fx.coord.syncCycle(context.Background())

	// The server copy stands; the local attempt is dropped without retry.
	assert.Equal(t, 1, fx.feed.pushCount())
	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
}

func TestCoordinatorConflictTieFavorsRemote(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	now := time.Now()
	item := fx.addItem(t, "local", now)

	other := models.ClipboardItem{ID: item.ID, Content: models.TextContent("remote"), Timestamp: now}
	server := remoteRecord(t, fx.codec, other, "device-b", "Desktop", "srv-1")
	conflictOnce(fx, server)

	require.NoError(t, fx.coord.QueueSave(item.ID))
	fx.coord.syncCycle(context.Background())

	assert.Equal(t, 1, fx.feed.pushCount())
	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
}

// ── Pull ─────────────────────────────────────────────────────────────────────

func TestCoordinatorPullInsertsRemoteRecords(t *testing.T) {
	fx := newFixture(t, nil)

	remote := models.ClipboardItem{ID: uuid.New(), Content: models.TextContent("from desktop"), Timestamp: time.Now()}
	fx.feed.pulls = []models.PullResult{{
		Modifications: []models.SyncRecord{remoteRecord(t, fx.codec, remote, "device-b", "Desktop", "srv-1")},
		Checkpoint:    []byte("cp-1"),
	}}
	fx.enableAndSync(t)

	got, err := fx.store.ItemByID(context.Background(), remote.ID)
	require.NoError(t, err)
	assert.Equal(t, remote.Content, got.Content)

	status := fx.coord.Status()
	assert.Contains(t, status.ConnectedDevices, "Desktop")
	assert.Equal(t, []byte("cp-1"), fx.coord.checkpoint.current())
}

func TestCoordinatorPullSuppressesSelfEcho(t *testing.T) {
	fx := newFixture(t, nil)

	echoed := models.ClipboardItem{ID: uuid.New(), Content: models.TextContent("ours"), Timestamp: time.Now()}
	fx.feed.pulls = []models.PullResult{{
		Modifications: []models.SyncRecord{remoteRecord(t, fx.codec, echoed, "device-a", "Laptop", "srv-1")},
		Checkpoint:    []byte("cp-1"),
	}}
	fx.enableAndSync(t)

	_, err := fx.store.ItemByID(context.Background(), echoed.ID)
	assert.ErrorIs(t, err, history.ErrItemNotFound)
	assert.Empty(t, fx.coord.Status().ConnectedDevices)
}

func TestCoordinatorPullKeepsExistingLocalEntry(t *testing.T) {
	fx := newFixture(t, nil)

	now := time.Now()
	local := fx.addItem(t, "local copy", now)

	remote := models.ClipboardItem{ID: local.ID, Content: models.TextContent("remote copy"), Timestamp: now.Add(-time.Minute)}
	fx.feed.pulls = []models.PullResult{{
		Modifications: []models.SyncRecord{remoteRecord(t, fx.codec, remote, "device-b", "Desktop", "srv-1")},
		Checkpoint:    []byte("cp-1"),
	}}
	fx.enableAndSync(t)

	got, err := fx.store.ItemByID(context.Background(), local.ID)
	require.NoError(t, err)
	assert.Equal(t, local.Content, got.Content, "older remote copy must not clobber local entry")
}

func TestCoordinatorPullNewerRemoteReplacesLocal(t *testing.T) {
	fx := newFixture(t, nil)

	now := time.Now()
	local := fx.addItem(t, "stale local", now.Add(-time.Hour))

	remote := models.ClipboardItem{ID: local.ID, Content: models.TextContent("fresh remote"), Timestamp: now}
	fx.feed.pulls = []models.PullResult{{
		Modifications: []models.SyncRecord{remoteRecord(t, fx.codec, remote, "device-b", "Desktop", "srv-2")},
		Checkpoint:    []byte("cp-1"),
	}}
	fx.enableAndSync(t)

	got, err := fx.store.ItemByID(context.Background(), local.ID)
	require.NoError(t, err)
	assert.Equal(t, remote.Content, got.Content)
}

func TestCoordinatorPullSkipsUndecodableRecords(t *testing.T) {
	fx := newFixture(t, nil)

	good := models.ClipboardItem{ID: uuid.New(), Content: models.TextContent("good"), Timestamp: time.Now()}
	bad := remoteRecord(t, fx.codec, good, "device-b", "Desktop", "srv-1")
	bad.ID = uuid.New()
	bad.Content = []byte("ciphertext from a key we do not hold")
	bad.Encrypted = true

	fx.feed.pulls = []models.PullResult{{
		Modifications: []models.SyncRecord{
			bad,
			remoteRecord(t, fx.codec, good, "device-b", "Desktop", "srv-2"),
		},
		Checkpoint: []byte("cp-1"),
	}}
	fx.enableAndSync(t)

	// The poisoned record is skipped; the rest of the batch still lands
	// and the checkpoint still advances.
	_, err := fx.store.ItemByID(context.Background(), good.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncIdle, fx.coord.Status().State)
	assert.Equal(t, []byte("cp-1"), fx.coord.checkpoint.current())
}

func TestCoordinatorPullAppliesDeletions(t *testing.T) {
	fx := newFixture(t, nil)

	doomed := fx.addItem(t, "doomed", time.Now())
	fx.feed.pulls = []models.PullResult{{
		Deletions:  []uuid.UUID{doomed.ID, uuid.New()},
		Checkpoint: []byte("cp-1"),
	}}
	fx.enableAndSync(t)

	_, err := fx.store.ItemByID(context.Background(), doomed.ID)
	assert.ErrorIs(t, err, history.ErrItemNotFound)
	assert.Equal(t, models.SyncIdle, fx.coord.Status().State)
}

func TestCoordinatorPullPaginates(t *testing.T) {
	fx := newFixture(t, nil)

	first := models.ClipboardItem{ID: uuid.New(), Content: models.TextContent("page one"), Timestamp: time.Now()}
	second := models.ClipboardItem{ID: uuid.New(), Content: models.TextContent("page two"), Timestamp: time.Now()}
	fx.feed.pulls = []models.PullResult{
		{
			Modifications: []models.SyncRecord{remoteRecord(t, fx.codec, first, "device-b", "Desktop", "srv-1")},
			Checkpoint:    []byte("cp-1"),
			More:          true,
		},
		{
			Modifications: []models.SyncRecord{remoteRecord(t, fx.codec, second, "device-b", "Desktop", "srv-2")},
			Checkpoint:    []byte("cp-2"),
		},
	}
	fx.enableAndSync(t)

	_, err := fx.store.ItemByID(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = fx.store.ItemByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("cp-2"), fx.coord.checkpoint.current())
}

// ── Session invalidation ─────────────────────────────────────────────────────

func TestCoordinatorStaleOutcomesDiscarded(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)

	item := fx.addItem(t, "inflight", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))

	fx.coord.mu.Lock()
	session := fx.coord.session
	fx.coord.mu.Unlock()

	// Disable lands while the batch is on the wire; its acknowledgment
	// must not dequeue anything.
	fx.coord.Disable()
	require.NoError(t, fx.coord.applyPushOutcomes(context.Background(), session, []models.PushOutcome{
		{ID: item.ID, Status: models.OutcomeSaved, Version: "v1"},
	}))

	assert.Equal(t, 1, fx.coord.Status().PendingChanges)
}

// ── Account lifecycle ────────────────────────────────────────────────────────

func TestCoordinatorAccountSignOutAndBack(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)
	ctx := context.Background()

	fx.coord.handleAccountEvent(ctx, models.AccountEvent{Kind: models.AccountSignOut})
	assert.Equal(t, models.SyncNoAccount, fx.coord.Status().State)

	// Cycles are inert while signed out.
	item := fx.addItem(t, "while signed out", time.Now())
	require.NoError(t, fx.coord.QueueSave(item.ID))
	before := fx.feed.pushCount()
	fx.coord.syncCycle(ctx)
	assert.Equal(t, before, fx.feed.pushCount())

	fx.coord.handleAccountEvent(ctx, models.AccountEvent{Kind: models.AccountSignIn})
	assert.Equal(t, models.SyncIdle, fx.coord.Status().State)
	fx.coord.syncCycle(ctx)
	assert.Equal(t, 0, fx.coord.Status().PendingChanges)
}

func TestCoordinatorAccountSwitchResetsSession(t *testing.T) {
	fx := newFixture(t, nil)

	remote := models.ClipboardItem{ID: uuid.New(), Content: models.TextContent("old account"), Timestamp: time.Now()}
	fx.feed.pulls = []models.PullResult{{
		Modifications: []models.SyncRecord{remoteRecord(t, fx.codec, remote, "device-b", "Desktop", "srv-1")},
		Checkpoint:    []byte("cp-old"),
	}}
	fx.enableAndSync(t)
	require.Equal(t, []byte("cp-old"), fx.coord.checkpoint.current())

	fx.coord.handleAccountEvent(context.Background(), models.AccountEvent{Kind: models.AccountSwitched})

	// Continuation state of the old account is gone and the feed session
	// was reopened from scratch.
	assert.Nil(t, fx.coord.checkpoint.current())
	assert.Empty(t, fx.coord.Status().ConnectedDevices)
	assert.Equal(t, 1, fx.feed.closes)
	require.Len(t, fx.feed.opens, 2)
	assert.Nil(t, fx.feed.opens[1])
}

func TestCoordinatorAccountEventsIgnoredWhileDisabled(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()

	fx.coord.handleAccountEvent(ctx, models.AccountEvent{Kind: models.AccountSignOut})
	assert.Equal(t, models.SyncDisabled, fx.coord.Status().State)
	fx.coord.handleAccountEvent(ctx, models.AccountEvent{Kind: models.AccountSwitched})
	assert.Equal(t, models.SyncDisabled, fx.coord.Status().State)
	assert.Zero(t, fx.feed.closes)
}

// ── End to end ───────────────────────────────────────────────────────────────

// Two devices sharing one key: A captures and pushes encrypted content, the
// feed hands it to B, and B's history ends up with the plaintext entry.
func TestCoordinatorTwoDeviceRelay(t *testing.T) {
	ctx := context.Background()
	keys := secret.NewMemoryStore()

	deviceA := newFixture(t, func(cfg *Config) { cfg.EncryptPayloads = true })
	deviceA.coord.codec = NewCodec(crypto.NewEngine(keys))
	deviceA.enableAndSync(t)

	item := deviceA.addItem(t, "hello from A", time.Now())
	require.NoError(t, deviceA.coord.QueueSave(item.ID))
	deviceA.coord.syncCycle(ctx)
	require.Equal(t, 0, deviceA.coord.Status().PendingChanges)

	pushed := deviceA.lastPush(t)
	require.Len(t, pushed.Items, 1)
	record := *pushed.Items[0].Record
	record.Version = "v1"
	require.True(t, record.Encrypted)

	// Device B holds the same key (imported out of band) and pulls the
	// record the feed stored.
	key, err := crypto.NewEngine(keys).ExportKey()
	require.NoError(t, err)
	keysB := secret.NewMemoryStore()
	engineB := crypto.NewEngine(keysB)
	require.NoError(t, engineB.ImportKey(key))

	deviceB := newFixture(t, func(cfg *Config) {
		cfg.DeviceID = "device-b"
		cfg.DeviceName = "Desktop"
	})
	deviceB.coord.codec = NewCodec(engineB)
	deviceB.feed.pulls = []models.PullResult{{
		Modifications: []models.SyncRecord{record},
		Checkpoint:    []byte("cp-1"),
	}}
	deviceB.enableAndSync(t)

	got, err := deviceB.store.ItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TextContent("hello from A"), got.Content)
	assert.Contains(t, deviceB.coord.Status().ConnectedDevices, "Laptop")
}

// Offline-first: changes queued during an outage survive and drain once
// connectivity returns.
func TestCoordinatorOfflineQueueDrains(t *testing.T) {
	fx := newFixture(t, nil)
	fx.enableAndSync(t)
	ctx := context.Background()

	fx.feed.pushErr = fmt.Errorf("no route to host")
	var items []models.ClipboardItem
	for i := range 3 {
		item := fx.addItem(t, fmt.Sprintf("offline-%d", i), time.Now())
		require.NoError(t, fx.coord.QueueSave(item.ID))
		items = append(items, item)
	}
	fx.coord.syncCycle(ctx)
	assert.Equal(t, models.SyncError, fx.coord.Status().State)
	assert.Equal(t, 3, fx.coord.Status().PendingChanges)

	fx.feed.pushErr = nil
	fx.coord.syncCycle(ctx)
	assert.Equal(t, models.SyncIdle, fx.coord.Status().State)
	assert.Equal(t, 0, fx.coord.Status().PendingChanges)

	push := fx.lastPush(t)
	require.Len(t, push.Items, 3)
	for i, item := range items {
		assert.Equal(t, item.ID, push.Items[i].Change.ID)
	}
}
