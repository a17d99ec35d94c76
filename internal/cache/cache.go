package cache

import "time"

// Cache defines a string-keyed key-value store with a per-entry TTL.
// Implementations must be safe for concurrent use; a miss is a normal
// outcome, never an error.
type Cache[V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key string) (V, bool)

	// Set stores the value with the given TTL. A zero or negative TTL
	// stores an already-expired entry.
	Set(key string, value V, ttl time.Duration)

	// Delete removes a key regardless of expiry and reports whether an
	// entry was removed.
	Delete(key string) bool

	// SweepExpired scans all entries, removes the expired ones and
	// returns how many were removed.
	SweepExpired() int

	// Len returns the number of non-expired entries currently stored.
	Len() int
}
