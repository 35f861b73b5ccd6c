// Package kv provides the durable key→blob store the note repository
// persists through. Implementations are dumb get/set; all serialization
// and schema concerns stay with the caller.
package kv

import "context"

// Store is a generic key→string blob store
type Store interface {
	// Get returns the value for key, with found=false when the key is absent
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores value under key, overwriting any previous value
	Set(ctx context.Context, key, value string) error
}
