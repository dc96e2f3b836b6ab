// SPDX-License-Identifier: Apache-2.0

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cliphist/clipsync/internal/crypto"
	"github.com/cliphist/clipsync/internal/logger"
	"github.com/cliphist/clipsync/models"
)

const createHistoryTable = `CREATE TABLE IF NOT EXISTS history (
	id                   TEXT PRIMARY KEY,
	content              BLOB      NOT NULL,
	ts                   TIMESTAMP NOT NULL,
	source_app_bundle_id TEXT      NOT NULL DEFAULT '',
	source_app_name      TEXT      NOT NULL DEFAULT '',
	paste_count          INTEGER   NOT NULL DEFAULT 0
);`

const (
	upsertItem = `INSERT INTO history (id, content, ts, source_app_bundle_id, source_app_name, paste_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			content = excluded.content,
			ts = excluded.ts,
			source_app_bundle_id = excluded.source_app_bundle_id,
			source_app_name = excluded.source_app_name,
			paste_count = excluded.paste_count;`

	selectItemByID = `SELECT id, content, ts, source_app_bundle_id, source_app_name, paste_count
		FROM history WHERE id = $1;`

	selectAllIDs = `SELECT id FROM history;`

	deleteItemByID = `DELETE FROM history WHERE id = $1;`

	bumpPasteCount = `UPDATE history SET paste_count = paste_count + 1 WHERE id = $1;`
)

// sqliteStore is the SQLite-backed [Store]. When a cipher is configured the
// content column holds sealed blobs; rows written before encryption was
// turned on remain plaintext JSON and are detected on read with
// [crypto.IsLikelyEncrypted], so old history files keep working.
type sqliteStore struct {
	db     *sql.DB
	cipher crypto.Engine // nil means content is stored as plaintext JSON
	logger *logger.Logger
}

// OpenSQLite opens (creating if needed) the history database at path and
// ensures the schema exists. cipher may be nil to store content unencrypted.
func OpenSQLite(ctx context.Context, path string, cipher crypto.Engine, log *logger.Logger) (Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	if _, err = db.ExecContext(ctx, createHistoryTable); err != nil {
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("history database opened")
	return &sqliteStore{db: db, cipher: cipher, logger: log}, nil
}

// NewSQLiteStore wraps an already opened connection. Used by tests that
// drive the store through sqlmock.
func NewSQLiteStore(db *sql.DB, cipher crypto.Engine, log *logger.Logger) Store {
	return &sqliteStore{db: db, cipher: cipher, logger: log}
}

// SaveCaptured implements [Store].
func (s *sqliteStore) SaveCaptured(ctx context.Context, item models.ClipboardItem) error {
	return s.upsert(ctx, item)
}

// InsertSyncedItem implements [Store].
func (s *sqliteStore) InsertSyncedItem(ctx context.Context, item models.ClipboardItem) error {
	return s.upsert(ctx, item)
}

func (s *sqliteStore) upsert(ctx context.Context, item models.ClipboardItem) error {
	content, err := s.sealContent(item.Content)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, upsertItem,
		item.ID.String(),
		content,
		item.Timestamp,
		item.SourceAppBundleID,
		item.SourceAppName,
		item.PasteCount,
	)
	if err != nil {
		return fmt.Errorf("upsert history item %s: %w", item.ID, err)
	}
	return nil
}

// ItemByID implements [Store].
func (s *sqliteStore) ItemByID(ctx context.Context, id uuid.UUID) (models.ClipboardItem, error) {
	row := s.db.QueryRowContext(ctx, selectItemByID, id.String())

	var (
		rawID   string
		content []byte
		item    models.ClipboardItem
	)
	err := row.Scan(&rawID, &content, &item.Timestamp, &item.SourceAppBundleID, &item.SourceAppName, &item.PasteCount)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ClipboardItem{}, ErrItemNotFound
	}
	if err != nil {
		return models.ClipboardItem{}, fmt.Errorf("scan history item %s: %w", id, err)
	}

	item.ID, err = uuid.Parse(rawID)
	if err != nil {
		return models.ClipboardItem{}, fmt.Errorf("parse history item id %q: %w", rawID, err)
	}
	item.Content, err = s.openContent(content)
	if err != nil {
		return models.ClipboardItem{}, fmt.Errorf("decode history item %s: %w", id, err)
	}

	return item, nil
}

// AllItemIDs implements [Store].
func (s *sqliteStore) AllItemIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, selectAllIDs)
	if err != nil {
		return nil, fmt.Errorf("query history ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan history id: %w", err)
		}
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			// One mangled row must not hide the rest of the history.
			s.logger.Warn().Str("id", raw).Msg("skipping history row with unparseable id")
			continue
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history ids: %w", err)
	}

	return ids, nil
}

// DeleteSyncedItem implements [Store].
func (s *sqliteStore) DeleteSyncedItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, deleteItemByID, id.String()); err != nil {
		return fmt.Errorf("delete history item %s: %w", id, err)
	}
	return nil
}

// TouchPasteCount implements [Store].
func (s *sqliteStore) TouchPasteCount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, bumpPasteCount, id.String()); err != nil {
		return fmt.Errorf("bump paste count for %s: %w", id, err)
	}
	return nil
}

func (s *sqliteStore) sealContent(content models.ClipboardContent) ([]byte, error) {
	plain, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	if s.cipher == nil {
		return plain, nil
	}

	sealed, err := s.cipher.Encrypt(plain)
	if err != nil {
		return nil, fmt.Errorf("encrypt content at rest: %w", err)
	}
	return sealed, nil
}

func (s *sqliteStore) openContent(blob []byte) (models.ClipboardContent, error) {
	plain := blob
	if s.cipher != nil && crypto.IsLikelyEncrypted(blob) {
		var err error
		if plain, err = s.cipher.Decrypt(blob); err != nil {
			return models.ClipboardContent{}, err
		}
	}

	var content models.ClipboardContent
	if err := json.Unmarshal(plain, &content); err != nil {
		return models.ClipboardContent{}, err
	}
	return content, nil
}
