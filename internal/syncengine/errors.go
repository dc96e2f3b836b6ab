package syncengine

import "errors"

var (
	// ErrWrongRecordKind means a pulled record carries a kind other than
	// [models.RecordKind]. The record is skipped, never batch-fatal.
	ErrWrongRecordKind = errors.New("wrong record kind")

	// ErrMissingField means a required record field is absent or zero.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidRecordID means the record key is not a valid identifier.
	ErrInvalidRecordID = errors.New("invalid record id")

	// ErrCorruptContent means the content bytes failed to deserialize
	// after any required decryption succeeded.
	ErrCorruptContent = errors.New("corrupt record content")

	// ErrAccountUnavailable is reported by the remote feed when no
	// account is signed in. Sync halts gracefully; local clipboard
	// operation continues unaffected.
	ErrAccountUnavailable = errors.New("remote account unavailable")

	// ErrZoneUnavailable is reported by the remote feed when the sync
	// zone does not exist and could not be created.
	ErrZoneUnavailable = errors.New("sync zone unavailable")
)
