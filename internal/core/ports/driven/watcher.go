package driven

import "context"

// TableWatcher notifies when a file changes on disk.
type TableWatcher interface {
	// Watch calls onChange after each write to path until ctx is cancelled.
	// Bursts of writes are coalesced into a single call.
	Watch(ctx context.Context, path string, onChange func()) error
}
