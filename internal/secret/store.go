// Package secret defines the durable key/value store for raw secrets
// (encryption keys, webhook signing secrets) and a private file-backed
// implementation.
//
// Production builds are expected to back this interface with the operating
// system's secure-storage facility through an external collaborator; the
// file store here is the documented escape hatch for automated testing and
// for platforms without a keychain daemon.
package secret

// Accounts under which clipsync stores its secrets.
const (
	// HistoryKeyAccount holds the 256-bit clipboard-history encryption key.
	HistoryKeyAccount = "history-encryption-key"

	// WebhookSecretAccount holds the webhook signing secret. The webhook
	// service itself lives outside this module; the account name is
	// reserved here so both components agree on it.
	WebhookSecretAccount = "webhook-secret"
)

// Store is a durable key/value store for raw secrets, keyed by account
// name. Implementations must survive process restarts and must never let a
// reader observe a partially written value.
//
// The boolean results mirror the OS keychain convention: operations report
// success or failure without an error value, and Delete reports true when
// the item is gone regardless of whether it existed.
type Store interface {
	// Put stores data under account, replacing any existing value.
	Put(account string, data []byte) bool

	// Get returns the value stored under account, or ok=false when the
	// account has no value.
	Get(account string) (data []byte, ok bool)

	// Delete removes the value stored under account. Returns true when
	// the account no longer holds a value.
	Delete(account string) bool

	// Exists reports whether account currently holds a value.
	Exists(account string) bool
}
