package syncengine

import (
	"fmt"
	"os"
)

// checkpointFile persists the feed's opaque continuation token. The
// coordinator never inspects the blob; its structure belongs to the feed.
// Writes are atomic (temp + rename) so a crash mid-write yields either the
// old or the new checkpoint on the next load, never a torn one.
type checkpointFile struct {
	path string // empty means in-memory only
	blob []byte
}

// openCheckpointFile loads the checkpoint persisted at path; a missing
// file means first run (nil checkpoint).
func openCheckpointFile(path string) (*checkpointFile, error) {
	c := &checkpointFile{path: path}
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sync checkpoint: %w", err)
	}

	c.blob = data
	return c, nil
}

// current returns the last persisted checkpoint, nil if none.
func (c *checkpointFile) current() []byte {
	return c.blob
}

// save persists a new checkpoint.
func (c *checkpointFile) save(blob []byte) error {
	if c.path != "" {
		if err := atomicWriteFile(c.path, blob); err != nil {
			return err
		}
	}
	c.blob = blob
	return nil
}

// clear discards the checkpoint, e.g. after an account switch invalidates
// the continuation state.
func (c *checkpointFile) clear() error {
	c.blob = nil
	if c.path == "" {
		return nil
	}

	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove sync checkpoint: %w", err)
	}
	return nil
}
