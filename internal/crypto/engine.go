// SPDX-License-Identifier: Apache-2.0

// Package crypto implements the AES-256-GCM encryption engine protecting
// clipboard payloads at rest and on the sync wire.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"

	"github.com/cliphist/clipsync/internal/secret"
)

const keySize = 32 // 256 bits

// encryptionEngine is the private implementation of [Engine]. The key lives
// in the secret store under [secret.HistoryKeyAccount]; keyMu serializes
// lazy creation so concurrent first calls cannot race a half-written key.
type encryptionEngine struct {
	secrets secret.Store
	account string

	keyMu sync.Mutex
}

// NewEngine constructs an [Engine] over the given secret store.
func NewEngine(secrets secret.Store) Engine {
	return &encryptionEngine{
		secrets: secrets,
		account: secret.HistoryKeyAccount,
	}
}

// Encrypt implements [Engine]. The returned blob layout is
// nonce (12 bytes) ‖ ciphertext ‖ tag (16 bytes); gcm.Seal appends the tag
// to the ciphertext, so prepending the nonce yields the full blob.
func (e *encryptionEngine) Encrypt(plaintext []byte) ([]byte, error) {
	gcm, err := e.aead()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt implements [Engine].
func (e *encryptionEngine) Decrypt(blob []byte) ([]byte, error) {
	gcm, err := e.aead()
	if err != nil {
		return nil, err
	}

	if len(blob) < gcm.NonceSize()+gcm.Overhead() {
		return nil, fmt.Errorf("%w: blob shorter than nonce+tag", ErrDecryptionFailed)
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Tag mismatch: tampering, corruption, or a different key.
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

// HasKey implements [Engine].
func (e *encryptionEngine) HasKey() bool {
	return e.secrets.Exists(e.account)
}

// DeleteKey implements [Engine].
func (e *encryptionEngine) DeleteKey() error {
	e.keyMu.Lock()
	defer e.keyMu.Unlock()

	if !e.secrets.Delete(e.account) {
		return fmt.Errorf("delete encryption key from secret store")
	}
	return nil
}

// ExportKey implements [Engine].
func (e *encryptionEngine) ExportKey() (string, error) {
	key, err := e.getOrCreateKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// ImportKey implements [Engine].
func (e *encryptionEngine) ImportKey(base64Key string) error {
	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeyMaterial, err)
	}
	if len(key) != keySize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyMaterial, keySize, len(key))
	}

	return e.storeKey(key)
}

// DeriveAndImportKey implements [Engine]. Argon2id parameters follow the
// OWASP recommendation: 1 iteration, 64 MiB memory, 4 threads.
func (e *encryptionEngine) DeriveAndImportKey(passphrase string, salt []byte) error {
	if passphrase == "" {
		return fmt.Errorf("%w: empty passphrase", ErrInvalidKeyMaterial)
	}
	if len(salt) < 16 {
		return fmt.Errorf("%w: salt shorter than 16 bytes", ErrInvalidKeyMaterial)
	}

	key := argon2.IDKey([]byte(passphrase), salt, 1, 64*1024, 4, keySize)
	return e.storeKey(key)
}

// aead builds the AES-256-GCM cipher from the stored key, creating the key
// on first use.
func (e *encryptionEngine) aead() (cipher.AEAD, error) {
	key, err := e.getOrCreateKey()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	return cipher.NewGCM(block)
}

// getOrCreateKey is the only path to the key. The store write completes
// before the key is ever used, so a crash between generate and persist can
// never leave encrypted data keyed by unsaved material.
func (e *encryptionEngine) getOrCreateKey() ([]byte, error) {
	e.keyMu.Lock()
	defer e.keyMu.Unlock()

	if key, ok := e.secrets.Get(e.account); ok {
		if len(key) != keySize {
			return nil, fmt.Errorf("%w: stored key has %d bytes", ErrKeyUnavailable, len(key))
		}
		return key, nil
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("%w: generate key: %w", ErrKeyUnavailable, err)
	}
	if !e.secrets.Put(e.account, key) {
		return nil, fmt.Errorf("%w: persist key", ErrKeyUnavailable)
	}

	return key, nil
}

// storeKey replaces the stored key under the creation lock.
func (e *encryptionEngine) storeKey(key []byte) error {
	e.keyMu.Lock()
	defer e.keyMu.Unlock()

	if !e.secrets.Put(e.account, key) {
		return fmt.Errorf("%w: persist key", ErrKeyUnavailable)
	}
	return nil
}

// IsLikelyEncrypted reports whether a persisted blob looks like engine
// output rather than legacy plaintext JSON. It checks only the first byte:
// serialized JSON (optionally preceded by whitespace) starts with one of a
// handful of known bytes, while a GCM nonce is 12 random bytes, so the
// false-classification probability is negligible. This is a migration
// heuristic for pre-encryption history files, not a format tag.
func IsLikelyEncrypted(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	switch data[0] {
	case '{', '[', ' ', '\t', '\n', '\r':
		return false
	default:
		return true
	}
}
