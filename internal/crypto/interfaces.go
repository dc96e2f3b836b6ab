package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/encryption_engine_mock.go -package=mock

// Engine provides authenticated symmetric encryption for clipboard payloads
// with a device-local 256-bit key held in the secret store.
//
// The key is created lazily on the first seal or open operation and never
// travels over the sync channel. Losing the key makes previously encrypted
// records permanently unreadable; callers must surface that as data loss,
// never substitute empty plaintext.
type Engine interface {
	// Encrypt seals plaintext with a fresh random nonce and returns
	// nonce ‖ ciphertext ‖ tag as one blob. Two calls with identical
	// plaintext produce different blobs. Returns [ErrKeyUnavailable]
	// when no key exists and one cannot be created.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt splits and opens a blob produced by Encrypt. Returns
	// [ErrDecryptionFailed] when the blob is shorter than nonce+tag or
	// the authentication tag does not verify (tampering, corruption, or
	// a different key).
	Decrypt(blob []byte) ([]byte, error)

	// HasKey reports whether the secret store currently holds a key.
	HasKey() bool

	// DeleteKey removes the key from the secret store. Irreversible:
	// every previously encrypted record becomes permanently unreadable.
	DeleteKey() error

	// ExportKey returns the key as standard base64 for manual backup.
	// Creates the key first if none exists.
	ExportKey() (string, error)

	// ImportKey replaces the stored key with a previously exported one.
	// Rejects material that does not decode to exactly 32 bytes.
	ImportKey(base64Key string) error

	// DeriveAndImportKey derives the key from a recovery passphrase and
	// salt via Argon2id and stores it. This is how a second device joins
	// an encrypted history without the raw key ever crossing the wire.
	DeriveAndImportKey(passphrase string, salt []byte) error
}
