package ports

import "context"

// Backgrounder enqueues a continuation (the next day, an introduction round)
// without blocking the caller. The only ordering guarantee is per-game
// single-flight: two continuations for the same game never run concurrently.
type Backgrounder interface {
	Schedule(gameID string, fn func(ctx context.Context))
}
