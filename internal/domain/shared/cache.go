package shared

import "context"

// SnapshotCache is a read-through cache for one computed listing. The entry
// stays valid until a write on the underlying entity invalidates it; reads
// while invalid go through the loader.
type SnapshotCache[T any] interface {
	Get(ctx context.Context, load func(ctx context.Context) (T, error)) (T, error)
	Invalidate()
}
