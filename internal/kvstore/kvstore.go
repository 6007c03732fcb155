// Package kvstore provides the synchronous key-value substrates the ledger
// store persists into. Values are opaque strings (JSON documents in practice).
package kvstore

// KeyValue is the host substrate the store writes through.
type KeyValue interface {
	// Get returns the value stored under key. found is false when the key is absent.
	Get(key string) (value string, found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// SetMany stores every entry, all or nothing where the backend allows it.
	SetMany(entries map[string]string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by the configuration.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)
