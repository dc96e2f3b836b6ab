// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/models"
)

// syncRepository is the PostgreSQL-backed [SyncRepository]. Record upserts
// and tombstones append to the change log in the same transaction, so the
// pull cursor never observes a record change without its log entry.
type syncRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncRepository constructs a [SyncRepository] backed by the provided
// database connection.
func NewSyncRepository(db *DB, log *logger.Logger) SyncRepository {
	return &syncRepository{DB: db, logger: log}
}

func (r *syncRepository) RegisterDevice(ctx context.Context, device models.Device) error {
	if _, err := r.DB.ExecContext(ctx, upsertDevice, device.DeviceID, device.DeviceName); err != nil {
		r.logger.Err(err).
			Str("device_id", device.DeviceID).
			Bool("retryable", isRetryablePgError(err)).
			Msg("failed to register device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *syncRepository) Devices(ctx context.Context) ([]models.Device, error) {
	rows, err := r.DB.QueryContext(ctx, selectDevices)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	devices := make([]models.Device, 0, 8)
	for rows.Next() {
		var device models.Device
		if err = rows.Scan(&device.DeviceID, &device.DeviceName, &device.LastSeenAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		devices = append(devices, device)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return devices, nil
}

func (r *syncRepository) EnsureZone(ctx context.Context, name string) error {
	if _, err := r.DB.ExecContext(ctx, insertZone, name); err != nil {
		// ON CONFLICT DO NOTHING absorbs the common race; a unique
		// violation can still surface from a concurrent schema state.
		if isUniqueViolation(err) {
			return nil
		}
		r.logger.Err(err).Str("zone", name).Msg("failed to ensure zone")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *syncRepository) RecordByID(ctx context.Context, id uuid.UUID) (models.SyncRecord, error) {
	row := r.DB.QueryRowContext(ctx, selectRecordByID, id)

	record, deleted, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return models.SyncRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if deleted {
		return record, ErrRecordDeleted
	}
	return record, nil
}

func (r *syncRepository) UpsertRecord(ctx context.Context, zone string, record models.SyncRecord) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, upsertRecord,
		record.ID, zone, record.Kind, record.Content, record.ContentType,
		record.Encrypted, record.Timestamp,
		record.SourceAppBundleID, record.SourceAppName, record.PasteCount,
		record.DeviceID, record.DeviceName, record.Version,
	)
	if err != nil {
		r.logger.Err(err).
			Stringer("id", record.ID).
			Bool("retryable", isRetryablePgError(err)).
			Msg("failed to upsert record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, insertChange, record.ID, models.ChangeSave, record.DeviceID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}
	return nil
}

func (r *syncRepository) TombstoneRecord(ctx context.Context, zone string, id uuid.UUID, deviceID, version string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, tombstoneRecord, id, zone, models.RecordKind, deviceID, version); err != nil {
		r.logger.Err(err).
			Stringer("id", id).
			Bool("retryable", isRetryablePgError(err)).
			Msg("failed to tombstone record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, insertChange, id, models.ChangeDelete, deviceID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}
	return nil
}

func (r *syncRepository) ChangesSince(ctx context.Context, seq int64, limit int) ([]ChangeEntry, error) {
	query, args, err := buildSelectChangesQuery(seq, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]ChangeEntry, 0, limit)
	for rows.Next() {
		var (
			entry   ChangeEntry
			record  models.SyncRecord
			deleted bool
		)
		if err = rows.Scan(
			&entry.Seq, &entry.RecordID, &entry.Op, &entry.DeviceID,
			&record.ID, &record.Kind, &record.Content, &record.ContentType,
			&record.Encrypted, &record.Timestamp,
			&record.SourceAppBundleID, &record.SourceAppName, &record.PasteCount,
			&record.DeviceID, &record.DeviceName, &record.Version, &deleted,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		if deleted {
			// A tombstoned record is only useful as a deletion marker;
			// its stored copy is empty.
			entry.Op = models.ChangeDelete
		}
		entry.Record = &record
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// scanRecord scans a records row in selectRecordByID column order.
func scanRecord(scan func(dest ...any) error) (models.SyncRecord, bool, error) {
	var (
		record  models.SyncRecord
		deleted bool
	)
	err := scan(
		&record.ID, &record.Kind, &record.Content, &record.ContentType,
		&record.Encrypted, &record.Timestamp,
		&record.SourceAppBundleID, &record.SourceAppName, &record.PasteCount,
		&record.DeviceID, &record.DeviceName, &record.Version, &deleted,
	)
	return record, deleted, err
}
