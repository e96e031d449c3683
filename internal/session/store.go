package session

import "context"

// Store persists session records. Load and Update return (nil, nil) for
// unknown IDs; absence is not an error at this layer.
//
// Update applies mutate to the stored record atomically with respect to
// other writers of the same backend: concurrent modification of the record
// between read and write must not be silently lost. A mutate error aborts
// the write and is returned unchanged.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Load(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, id string, mutate func(*Record) error) (*Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
