package store

import "context"

// Store persists the whole tracker state as one blob. There is no
// partial-write API on purpose: every mutation loads the blob, changes
// it in memory and saves it back in a single call, so the flat
// completed-workouts list and the per-date buckets can never end up
// half-updated.
type Store interface {
	Load(ctx context.Context) (*Blob, error)
	Save(ctx context.Context, blob *Blob) error
}
