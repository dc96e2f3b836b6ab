package service

import "errors"

var (
	// ErrEmptyDeviceID is returned when a request carries no device id.
	ErrEmptyDeviceID = errors.New("empty device id")

	// ErrBatchLengthMismatch is returned when a push batch's declared
	// length does not match the number of submitted items.
	ErrBatchLengthMismatch = errors.New("batch length mismatch")

	// ErrInvalidCheckpoint is returned when a pull cursor cannot be
	// parsed. The client should restart from a nil checkpoint.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")

	// ErrEmptyZoneName is returned when a zone declaration has no name.
	ErrEmptyZoneName = errors.New("empty zone name")
)
