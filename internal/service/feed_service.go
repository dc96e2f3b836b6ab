// SPDX-License-Identifier: Apache-2.0

// Package service implements the server-side feed semantics on top of the
// sync repository: version tags, conflict detection, and the change feed.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/internal/store"
	"github.com/cliphist/clipsync/models"
)

// pullPageSize caps how many change-log entries one pull page covers.
const pullPageSize = 100

type feedService struct {
	repo   store.SyncRepository
	logger *logger.Logger
}

// NewFeedService constructs a [FeedService] over the given repository.
func NewFeedService(repo store.SyncRepository, log *logger.Logger) FeedService {
	return &feedService{repo: repo, logger: log}
}

func (s *feedService) RegisterDevice(ctx context.Context, reg models.DeviceRegistration) error {
	if reg.DeviceID == "" {
		return ErrEmptyDeviceID
	}
	return s.repo.RegisterDevice(ctx, models.Device{
		DeviceID:   reg.DeviceID,
		DeviceName: reg.DeviceName,
	})
}

func (s *feedService) Devices(ctx context.Context) ([]models.Device, error) {
	return s.repo.Devices(ctx)
}

func (s *feedService) EnsureZone(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyZoneName
	}
	return s.repo.EnsureZone(ctx, name)
}

// Push applies the batch item by item. Saves use optimistic locking: the
// stored version must match the version the client's record is based on,
// otherwise the stored copy is returned in a conflict outcome. Deletes are
// last-write-wins and always succeed, tombstoning the id forever.
func (s *feedService) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	if req.DeviceID == "" {
		return models.PushResponse{}, ErrEmptyDeviceID
	}
	if req.Length != len(req.Items) {
		return models.PushResponse{}, fmt.Errorf("%w: declared %d, got %d", ErrBatchLengthMismatch, req.Length, len(req.Items))
	}

	log := logger.FromContext(ctx)
	outcomes := make([]models.PushOutcome, 0, len(req.Items))
	for _, item := range req.Items {
		var outcome models.PushOutcome
		switch item.Change.Op {
		case models.ChangeDelete:
			outcome = s.applyDelete(ctx, req.DeviceID, item.Change.ID)
		case models.ChangeSave:
			outcome = s.applySave(ctx, item)
		default:
			outcome = models.PushOutcome{
				ID:     item.Change.ID,
				Status: models.OutcomeFailed,
				Error:  fmt.Sprintf("unknown change op %q", item.Change.Op),
			}
		}

		if outcome.Status == models.OutcomeFailed {
			log.Warn().
				Stringer("id", outcome.ID).
				Str("error", outcome.Error).
				Msg("push item failed")
		}
		outcomes = append(outcomes, outcome)
	}

	return models.PushResponse{Outcomes: outcomes, Length: len(outcomes)}, nil
}

func (s *feedService) applySave(ctx context.Context, item models.PushItem) models.PushOutcome {
	id := item.Change.ID
	if item.Record == nil {
		return models.PushOutcome{ID: id, Status: models.OutcomeFailed, Error: "save without record"}
	}

	stored, err := s.repo.RecordByID(ctx, id)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		// First save of this id; any base version is accepted.
	case errors.Is(err, store.ErrRecordDeleted):
		// Ids are never reused after a tombstone.
		return models.PushOutcome{ID: id, Status: models.OutcomeFailed, Error: "record deleted"}
	case err != nil:
		return models.PushOutcome{ID: id, Status: models.OutcomeFailed, Error: err.Error()}
	case stored.Version != item.Record.Version:
		// The client pushed against a version another device has since
		// replaced. Hand back the stored copy for resolution.
		serverCopy := stored
		return models.PushOutcome{ID: id, Status: models.OutcomeConflict, ServerRecord: &serverCopy}
	}

	record := *item.Record
	record.Version = uuid.NewString()
	if err = s.repo.UpsertRecord(ctx, models.ZoneName, record); err != nil {
		return models.PushOutcome{ID: id, Status: models.OutcomeFailed, Error: err.Error()}
	}

	return models.PushOutcome{ID: id, Status: models.OutcomeSaved, Version: record.Version}
}

func (s *feedService) applyDelete(ctx context.Context, deviceID string, id uuid.UUID) models.PushOutcome {
	version := uuid.NewString()
	if err := s.repo.TombstoneRecord(ctx, models.ZoneName, id, deviceID, version); err != nil {
		return models.PushOutcome{ID: id, Status: models.OutcomeFailed, Error: err.Error()}
	}
	return models.PushOutcome{ID: id, Status: models.OutcomeSaved, Version: version}
}

// Changes serves one pull page. The checkpoint is the decimal change-log
// sequence number of the last entry the client applied; an empty checkpoint
// starts from the beginning of the log.
func (s *feedService) Changes(ctx context.Context, checkpoint []byte) (models.PullResult, error) {
	since, err := parseCheckpoint(checkpoint)
	if err != nil {
		return models.PullResult{}, err
	}

	// Fetch one entry past the page to learn whether more are pending.
	entries, err := s.repo.ChangesSince(ctx, since, pullPageSize+1)
	if err != nil {
		return models.PullResult{}, err
	}

	more := len(entries) > pullPageSize
	if more {
		entries = entries[:pullPageSize]
	}
	if len(entries) == 0 {
		return models.PullResult{Checkpoint: checkpoint}, nil
	}

	// Collapse multiple entries for the same record within the page; only
	// the latest state matters to the client.
	type recordState struct {
		op     models.ChangeOp
		record *models.SyncRecord
	}
	order := make([]uuid.UUID, 0, len(entries))
	latest := make(map[uuid.UUID]recordState, len(entries))
	for _, entry := range entries {
		if _, seen := latest[entry.RecordID]; !seen {
			order = append(order, entry.RecordID)
		}
		latest[entry.RecordID] = recordState{op: entry.Op, record: entry.Record}
	}

	result := models.PullResult{
		Checkpoint: formatCheckpoint(entries[len(entries)-1].Seq),
		More:       more,
	}
	for _, id := range order {
		state := latest[id]
		if state.op == models.ChangeDelete || state.record == nil {
			result.Deletions = append(result.Deletions, id)
			continue
		}
		result.Modifications = append(result.Modifications, *state.record)
	}

	return result, nil
}

func parseCheckpoint(checkpoint []byte) (int64, error) {
	if len(checkpoint) == 0 {
		return 0, nil
	}
	seq, err := strconv.ParseInt(string(checkpoint), 10, 64)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCheckpoint, checkpoint)
	}
	return seq, nil
}

func formatCheckpoint(seq int64) []byte {
	return []byte(strconv.FormatInt(seq, 10))
}
