package store

import "errors"

// Sentinel errors returned by repository methods. Callers match with
// [errors.Is].
var (
	// ErrRecordNotFound is returned when a queried record id does not
	// exist in the database, not even as a tombstone.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordDeleted is returned when an operation targets a record that
	// has been tombstoned. Record ids are never reused after deletion.
	ErrRecordDeleted = errors.New("record deleted")
)

// Low-level database operation errors, wrapped around the driver error.
var (
	ErrBuildingSQLQuery      = errors.New("error building sql query")
	ErrExecutingQuery        = errors.New("error executing sql query")
	ErrExecutingStatement    = errors.New("failed to execute statement")
	ErrBeginningTransaction  = errors.New("failed to begin transaction")
	ErrCommittingTransaction = errors.New("failed to commit transaction")
	ErrScanningRow           = errors.New("failed to scan row")
	ErrScanningRows          = errors.New("failed to scan rows")
)
