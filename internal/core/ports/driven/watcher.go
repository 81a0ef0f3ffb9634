package driven

import "context"

// FileWatcher reports changes to a single file.
type FileWatcher interface {
	// Watch sends on the returned channel every time path is written or
	// recreated. Bursts of events are coalesced. The channel is closed when
	// ctx is cancelled or watching fails.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
