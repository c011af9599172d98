package filepool

import (
	"context"
	"sync"
)

// Resource represents a resource acquired from the pool.
type Resource struct {
	pool        *Pool
	name        string
	releaseOnce sync.Once
	releaseErr  error
}

// Name returns the name of the resource as recorded in the table.
func (r *Resource) Name() string {
	return r.name
}

// Release marks the resource free again so another process can claim
// it. It is safe to call Release multiple times; subsequent calls are
// no-ops returning the first result. This allows both
// defer r.Release(ctx) and explicit release patterns.
func (r *Resource) Release(ctx context.Context) error {
	r.releaseOnce.Do(func() {
		r.releaseErr = r.pool.Release(ctx, r.name)
	})
	return r.releaseErr
}

// Close releases the resource back to the pool, ignoring any errors.
// It is provided for convenience with defer statements and is
// equivalent to calling Release with a background context.
func (r *Resource) Close() {
	_ = r.Release(context.Background())
}
