// Package cache stores evaluated route reports so that re-running an
// unchanged puzzle skips the engine.
//
// Three backends implement [Cache]:
//   - [FileCache] keeps entries as JSON files under the XDG cache directory (CLI)
//   - [RedisCache] shares entries between processes (server)
//   - [NullCache] disables caching
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the canonical form of a
// route.Input together with the evaluation options that change the output;
// [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// DefaultReportTTL is how long evaluated reports stay cached.
const DefaultReportTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the stored bytes and true on a hit.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ReportKeyOpts holds the evaluation options that change a report set.
// The worker count is deliberately absent: it never changes the output.
type ReportKeyOpts struct {
	Limit int `json:"limit,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ReportKey returns the key for the reports of the input with the given hash.
	ReportKey(inputHash string, opts ReportKeyOpts) string
}

// DefaultKeyer produces "reports:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(inputHash string, opts ReportKeyOpts) string {
	return hashKey("reports", inputHash, opts)
}

// NullCache is installed by --no-cache and by runners built without a cache.
// Every report lookup misses, so each solve runs the engine again, and stored
// documents are discarded.
type NullCache struct{}

// NewNullCache returns a cache that holds no reports.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
