// Package cache provides the local key-value mirror. It is a best-effort
// offline fallback for presentation reads, never an authoritative source.
package cache

// KeyValue is the local cache contract: a string key-value store.
type KeyValue interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
