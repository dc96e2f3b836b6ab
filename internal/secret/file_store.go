// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
)

// fileStore keeps one file per account under a private directory. Writes go
// through a temp file plus rename so a crash mid-write never leaves a torn
// secret, and an RWMutex keeps reads exclusive with writes.
type fileStore struct {
	dir string

	mu sync.RWMutex
}

// NewFileStore constructs a [Store] rooted at dir, creating the directory
// with owner-only permissions if needed.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &fileStore{dir: dir}, nil
}

// Put implements [Store].
func (s *fileStore) Put(account string, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.accountPath(account)
	tmp, err := os.CreateTemp(s.dir, ".secret-*")
	if err != nil {
		return false
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false
	}
	if err = os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return false
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return false
	}

	return true
}

// Get implements [Store].
func (s *fileStore) Get(account string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.accountPath(account))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Delete implements [Store].
func (s *fileStore) Delete(account string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.accountPath(account))
	return err == nil || os.IsNotExist(err)
}

// Exists implements [Store].
func (s *fileStore) Exists(account string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.accountPath(account))
	return err == nil
}

// accountPath hex-encodes the account name so arbitrary account strings
// cannot escape the store directory.
func (s *fileStore) accountPath(account string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(account)))
}
