// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	upsertDevice = `INSERT INTO devices (device_id, device_name, last_seen_at)
	VALUES ($1, $2, now())
	ON CONFLICT (device_id) DO UPDATE
	SET device_name = EXCLUDED.device_name, last_seen_at = now();`

	selectDevices = `SELECT device_id, device_name, last_seen_at
	FROM devices
	ORDER BY last_seen_at DESC;`

	insertZone = `INSERT INTO zones (name)
	VALUES ($1)
	ON CONFLICT (name) DO NOTHING;`

	selectRecordByID = `SELECT id, kind, content, content_type, encrypted, ts,
		source_app_bundle_id, source_app_name, paste_count,
		device_id, device_name, version, deleted
	FROM records
	WHERE id = $1;`

	upsertRecord = `INSERT INTO records (
		id, zone, kind, content, content_type, encrypted, ts,
		source_app_bundle_id, source_app_name, paste_count,
		device_id, device_name, version
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (id) DO UPDATE SET
		kind = EXCLUDED.kind,
		content = EXCLUDED.content,
		content_type = EXCLUDED.content_type,
		encrypted = EXCLUDED.encrypted,
		ts = EXCLUDED.ts,
		source_app_bundle_id = EXCLUDED.source_app_bundle_id,
		source_app_name = EXCLUDED.source_app_name,
		paste_count = EXCLUDED.paste_count,
		device_id = EXCLUDED.device_id,
		device_name = EXCLUDED.device_name,
		version = EXCLUDED.version,
		deleted = false,
		updated_at = now();`

	tombstoneRecord = `INSERT INTO records (
		id, zone, kind, content, content_type, encrypted, ts,
		device_id, device_name, version, deleted
	) VALUES ($1, $2, $3, ''::bytea, '', false, now(), $4, '', $5, true)
	ON CONFLICT (id) DO UPDATE SET
		deleted = true,
		device_id = EXCLUDED.device_id,
		version = EXCLUDED.version,
		updated_at = now();`

	insertChange = `INSERT INTO changes (record_id, op, device_id)
	VALUES ($1, $2, $3);`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectChangesQuery builds the change-log page query: entries past
// the cursor joined with their current record rows, ascending, capped.
func buildSelectChangesQuery(sinceSeq int64, limit int) (string, []any, error) {
	query, args, err := psql.
		Select(
			"c.seq", "c.record_id", "c.op", "c.device_id",
			"r.id", "r.kind", "r.content", "r.content_type", "r.encrypted", "r.ts",
			"r.source_app_bundle_id", "r.source_app_name", "r.paste_count",
			"r.device_id", "r.device_name", "r.version", "r.deleted",
		).
		From("changes c").
		Join("records r ON r.id = c.record_id").
		Where(sq.Gt{"c.seq": sinceSeq}).
		OrderBy("c.seq ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
