// SPDX-License-Identifier: Apache-2.0

package syncengine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cliphist/clipsync/models"
)

// pendingQueue is the durable outbound-change queue. Entries are kept in
// enqueue order; at most one entry exists per record id: a later change
// collapses an earlier un-sent one, so a delete supersedes a queued save
// instead of both being transmitted.
//
// Every mutation persists to disk before returning, so a change that was
// queued and then lost to a crash is still queued after restart. The
// caller (the coordinator) serializes access; pendingQueue itself is not
// goroutine-safe.
type pendingQueue struct {
	path    string // empty means in-memory only
	changes []models.PendingChange
}

// openPendingQueue loads the queue persisted at path, or starts empty when
// the file does not exist. An empty path keeps the queue in memory only
// (tests, read-only companion role).
func openPendingQueue(path string) (*pendingQueue, error) {
	q := &pendingQueue{path: path}
	if path == "" {
		return q, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return q, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pending queue: %w", err)
	}
	if err = json.Unmarshal(data, &q.changes); err != nil {
		return nil, fmt.Errorf("decode pending queue: %w", err)
	}

	return q, nil
}

// enqueue adds a change, replacing any queued change for the same id, and
// persists the queue.
func (q *pendingQueue) enqueue(change models.PendingChange) error {
	filtered := q.changes[:0]
	for _, existing := range q.changes {
		if existing.ID != change.ID {
			filtered = append(filtered, existing)
		}
	}
	q.changes = append(filtered, change)

	return q.persist()
}

// ack removes the queued change for id after a confirmed remote
// acknowledgment. Acking an id that is not queued is a no-op, so applying
// the same acknowledgment twice leaves the queue unchanged.
func (q *pendingQueue) ack(id uuid.UUID) error {
	filtered := q.changes[:0]
	removed := false
	for _, existing := range q.changes {
		if existing.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, existing)
	}
	q.changes = filtered

	if !removed {
		return nil
	}
	return q.persist()
}

// next returns up to limit queued changes in enqueue order. limit <= 0
// returns everything.
func (q *pendingQueue) next(limit int) []models.PendingChange {
	n := len(q.changes)
	if limit > 0 && limit < n {
		n = limit
	}

	batch := make([]models.PendingChange, n)
	copy(batch, q.changes[:n])
	return batch
}

func (q *pendingQueue) depth() int {
	return len(q.changes)
}

// persist writes the queue atomically: temp file plus rename, so a crash
// mid-write never leaves a torn queue file.
func (q *pendingQueue) persist() error {
	if q.path == "" {
		return nil
	}

	data, err := json.Marshal(q.changes)
	if err != nil {
		return fmt.Errorf("encode pending queue: %w", err)
	}

	return atomicWriteFile(q.path, data)
}

// atomicWriteFile writes data to path via a temp file in the same
// directory followed by a rename.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp state file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}
