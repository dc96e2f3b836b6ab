// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/models"
)

func newTestRepo(t *testing.T) (SyncRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSyncRepository(NewDB(db, logger.Nop()), logger.Nop()), mock
}

var recordColumns = []string{
	"id", "kind", "content", "content_type", "encrypted", "ts",
	"source_app_bundle_id", "source_app_name", "paste_count",
	"device_id", "device_name", "version", "deleted",
}

var changeColumns = []string{
	"seq", "record_id", "op", "device_id",
	"id", "kind", "content", "content_type", "encrypted", "ts",
	"source_app_bundle_id", "source_app_name", "paste_count",
	"r_device_id", "device_name", "version", "deleted",
}

func wireRecord(id uuid.UUID, version string) models.SyncRecord {
	return models.SyncRecord{
		Kind:        models.RecordKind,
		ID:          id,
		Content:     []byte(`{"type":"text","text":"hi"}`),
		ContentType: models.ContentTypeText,
		Timestamp:   time.Now().UTC().Truncate(time.Millisecond),
		DeviceID:    "device-a",
		DeviceName:  "Office iMac",
		Version:     version,
	}
}

// ─────────────────────────────────────────────
// Devices
// ─────────────────────────────────────────────

func TestRegisterDevice(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO devices")).
		WithArgs("device-a", "Office iMac").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RegisterDevice(context.Background(), models.Device{DeviceID: "device-a", DeviceName: "Office iMac"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDevices(t *testing.T) {
	repo, mock := newTestRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT device_id, device_name, last_seen_at")).
		WillReturnRows(sqlmock.NewRows([]string{"device_id", "device_name", "last_seen_at"}).
			AddRow("device-b", "MacBook", now).
			AddRow("device-a", "Office iMac", now.Add(-time.Hour)))

	devices, err := repo.Devices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "device-b", devices[0].DeviceID)
	assert.Equal(t, "Office iMac", devices[1].DeviceName)
}

// ─────────────────────────────────────────────
// Zones
// ─────────────────────────────────────────────

func TestEnsureZone(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO zones")).
		WithArgs(models.ZoneName).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.EnsureZone(context.Background(), models.ZoneName))
}

// ─────────────────────────────────────────────
// RecordByID
// ─────────────────────────────────────────────

func TestRecordByID(t *testing.T) {
	repo, mock := newTestRepo(t)

	want := wireRecord(uuid.New(), "v-1")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, content")).
		WithArgs(want.ID).
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(
			want.ID, want.Kind, want.Content, want.ContentType, want.Encrypted, want.Timestamp,
			want.SourceAppBundleID, want.SourceAppName, want.PasteCount,
			want.DeviceID, want.DeviceName, want.Version, false,
		))

	got, err := repo.RecordByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecordByIDNotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, content")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.RecordByID(context.Background(), id)
	require.ErrorIs(t, err, ErrRecordNotFound)
}

// TestRecordByIDTombstoned verifies that a deleted row surfaces as
// [ErrRecordDeleted] while still reporting the tombstone's version tag.
func TestRecordByIDTombstoned(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, content")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(
			id, models.RecordKind, []byte{}, "", false, time.Now().UTC(),
			"", "", 0, "device-a", "", "v-tomb", true,
		))

	record, err := repo.RecordByID(context.Background(), id)
	require.ErrorIs(t, err, ErrRecordDeleted)
	assert.Equal(t, "v-tomb", record.Version)
}

// ─────────────────────────────────────────────
// UpsertRecord / TombstoneRecord
// ─────────────────────────────────────────────

// TestUpsertRecordAppendsChange verifies the record write and its change
// log entry commit in one transaction.
func TestUpsertRecordAppendsChange(t *testing.T) {
	repo, mock := newTestRepo(t)

	record := wireRecord(uuid.New(), "v-2")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs(
			record.ID, models.ZoneName, record.Kind, record.Content, record.ContentType,
			record.Encrypted, record.Timestamp,
			record.SourceAppBundleID, record.SourceAppName, record.PasteCount,
			record.DeviceID, record.DeviceName, record.Version,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO changes")).
		WithArgs(record.ID, models.ChangeSave, record.DeviceID).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpsertRecord(context.Background(), models.ZoneName, record))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRecordRollsBackOnChangeFailure(t *testing.T) {
	repo, mock := newTestRepo(t)

	record := wireRecord(uuid.New(), "v-2")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO changes")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.UpsertRecord(context.Background(), models.ZoneName, record)
	require.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTombstoneRecordAppendsChange(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs(id, models.ZoneName, models.RecordKind, "device-a", "v-3").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO changes")).
		WithArgs(id, models.ChangeDelete, "device-a").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.TombstoneRecord(context.Background(), models.ZoneName, id, "device-a", "v-3"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────
// ChangesSince
// ─────────────────────────────────────────────

func TestChangesSince(t *testing.T) {
	repo, mock := newTestRepo(t)

	saved := wireRecord(uuid.New(), "v-1")
	deletedID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM changes c")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(changeColumns).
			AddRow(
				8, saved.ID, models.ChangeSave, saved.DeviceID,
				saved.ID, saved.Kind, saved.Content, saved.ContentType, saved.Encrypted, saved.Timestamp,
				saved.SourceAppBundleID, saved.SourceAppName, saved.PasteCount,
				saved.DeviceID, saved.DeviceName, saved.Version, false,
			).
			AddRow(
				9, deletedID, models.ChangeDelete, "device-b",
				deletedID, models.RecordKind, []byte{}, "", false, time.Now().UTC(),
				"", "", 0, "device-b", "", "v-tomb", true,
			))

	entries, err := repo.ChangesSince(context.Background(), 7, 100)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(8), entries[0].Seq)
	assert.Equal(t, models.ChangeSave, entries[0].Op)
	require.NotNil(t, entries[0].Record)
	assert.Equal(t, saved, *entries[0].Record)

	assert.Equal(t, int64(9), entries[1].Seq)
	assert.Equal(t, models.ChangeDelete, entries[1].Op)
}

// TestChangesSinceForcesDeleteOnTombstonedRows covers a save log entry
// whose record was tombstoned afterwards: the current row state wins.
func TestChangesSinceForcesDeleteOnTombstonedRows(t *testing.T) {
	repo, mock := newTestRepo(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM changes c")).
		WithArgs(int64(0)).
		WillReturnRows(sqlmock.NewRows(changeColumns).
			AddRow(
				1, id, models.ChangeSave, "device-a",
				id, models.RecordKind, []byte{}, "", false, time.Now().UTC(),
				"", "", 0, "device-a", "", "v-tomb", true,
			))

	entries, err := repo.ChangesSince(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ChangeDelete, entries[0].Op)
}
