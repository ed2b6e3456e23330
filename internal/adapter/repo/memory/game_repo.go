package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"
)

// GameRepo is the in-memory GameRepository used by tests and local runs.
// Snapshots are stored as JSON so the repo holds deep copies: callers can
// keep mutating their live aggregate without reaching into the store.
type GameRepo struct {
	mu       sync.RWMutex
	games    map[string][]byte
	versions map[string]int64
}

func NewGameRepo() *GameRepo {
	return &GameRepo{
		games:    make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

func (r *GameRepo) Load(_ context.Context, gameID string) (*ship.Ship, error) {
	r.mu.RLock()
	raw, ok := r.games[gameID]
	r.mu.RUnlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	var s ship.Ship
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", gameID, err)
	}
	return &s, nil
}

func (r *GameRepo) SaveSnapshot(_ context.Context, s *ship.Ship, expectedVersion int64) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", s.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	current, exists := r.versions[s.ID]
	if !exists {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
	} else if current != expectedVersion {
		return ports.ErrConflict
	}
	r.games[s.ID] = raw
	r.versions[s.ID] = s.Version
	return nil
}

func (r *GameRepo) PatchPlayerSleep(ctx context.Context, gameID, playerID string, requested bool) error {
	return r.patch(ctx, gameID, func(s *ship.Ship) error {
		p, ok := s.Players[playerID]
		if !ok {
			return ports.ErrNotFound
		}
		p.RequestedSleep = requested
		return nil
	})
}

func (r *GameRepo) PatchDroneName(ctx context.Context, gameID, droneID, name string) error {
	return r.patch(ctx, gameID, func(s *ship.Ship) error {
		d, ok := s.Drones[droneID]
		if !ok {
			return ports.ErrNotFound
		}
		d.Name = name
		return nil
	})
}

func (r *GameRepo) PatchDestroyQueue(ctx context.Context, gameID, droneID string, queued bool) error {
	return r.patch(ctx, gameID, func(s *ship.Ship) error {
		if _, ok := s.Drones[droneID]; !ok {
			return ports.ErrNotFound
		}
		if queued {
			s.QueueDestruction(droneID)
		} else {
			s.AbortDestruction(droneID)
		}
		return nil
	})
}

// patch applies a single-field mutation to the stored snapshot without
// touching the version, mirroring the column-level updates of the SQL repo.
func (r *GameRepo) patch(_ context.Context, gameID string, fn func(s *ship.Ship) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, ok := r.games[gameID]
	if !ok {
		return ports.ErrNotFound
	}
	var s ship.Ship
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", gameID, err)
	}
	if err := fn(&s); err != nil {
		return err
	}
	updated, err := json.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", gameID, err)
	}
	r.games[gameID] = updated
	return nil
}
