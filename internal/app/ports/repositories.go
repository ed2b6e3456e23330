package ports

import (
	"context"

	"voidwake/internal/domain/ship"
)

// GameRepository persists ship aggregates. SaveSnapshot must reject stale
// writes: callers always submit the version they read, and a mismatch is
// reported as ErrConflict. The Patch* methods are atomic single-field
// updates used by the command processor so a night command never clobbers
// concurrent writes to unrelated fields.
type GameRepository interface {
	Load(ctx context.Context, gameID string) (*ship.Ship, error)
	SaveSnapshot(ctx context.Context, s *ship.Ship, expectedVersion int64) error

	PatchPlayerSleep(ctx context.Context, gameID, playerID string, requested bool) error
	PatchDroneName(ctx context.Context, gameID, droneID, name string) error
	PatchDestroyQueue(ctx context.Context, gameID, droneID string, queued bool) error
}

// GameArchiver stores terminal games out of the hot path.
type GameArchiver interface {
	ArchiveGame(ctx context.Context, s *ship.Ship, verdict ship.Verdict) error
}
