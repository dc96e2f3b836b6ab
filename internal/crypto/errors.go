package crypto

import "errors"

var (
	// ErrKeyUnavailable is returned when the secret store holds no key
	// and creating one failed (storage write error). It is never
	// silently swapped for plaintext operation.
	ErrKeyUnavailable = errors.New("encryption key unavailable")

	// ErrDecryptionFailed is returned when a blob is malformed or its
	// authentication tag does not verify. Callers treat the one record
	// as unreadable; the error never aborts a batch.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeyMaterial is returned by ImportKey when the supplied
	// material does not decode to a 256-bit key.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
)
