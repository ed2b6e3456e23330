package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"voidwake/internal/adapter/repo/gorm/model"
	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"

	"gorm.io/gorm"
)

// GameRepo persists ship aggregates across the games, drones, and players
// tables. Full-snapshot writes go through the version check on the games row;
// the field patches deliberately bypass it so a night-phase command never
// clobbers (or is clobbered by) unrelated columns.
type GameRepo struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) GameRepo {
	return GameRepo{db: db}
}

func (r GameRepo) Load(ctx context.Context, gameID string) (*ship.Ship, error) {
	var gm model.Game
	if err := r.db.WithContext(ctx).Where("id = ?", gameID).First(&gm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var drones []model.Drone
	if err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Find(&drones).Error; err != nil {
		return nil, err
	}
	var players []model.Player
	if err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Find(&players).Error; err != nil {
		return nil, err
	}

	s := &ship.Ship{
		ID:             gm.ID,
		Oxygen:         int(gm.Oxygen),
		Fuel:           int(gm.Fuel),
		ShuttleBayFuel: int(gm.ShuttleBayFuel),
		TorpedoBayFuel: int(gm.TorpedoBayFuel),
		Cycle:          int(gm.Cycle),
		Phase:          ship.Phase(gm.Phase),
		Drones:         make(map[string]*ship.Drone, len(drones)),
		Players:        make(map[string]*ship.Player, len(players)),
		Station:        ship.Station{PendingDestroy: map[string]bool{}},
		Version:        gm.Version,
		UpdatedAt:      gm.UpdatedAt,
	}
	for _, dm := range drones {
		d, err := droneFromModel(dm)
		if err != nil {
			return nil, fmt.Errorf("decode drone %s: %w", dm.ID, err)
		}
		s.Drones[d.ID] = d
		if dm.PendingDestroy {
			s.Station.PendingDestroy[d.ID] = true
		}
	}
	for _, pm := range players {
		s.Players[pm.ID] = &ship.Player{
			ID:             pm.ID,
			Name:           pm.Name,
			Alive:          pm.Alive,
			RequestedSleep: pm.RequestedSleep,
			DroneID:        pm.DroneID,
			Role:           ship.RoleLoyal,
		}
	}
	return s, nil
}

// SaveSnapshot writes the whole aggregate. expectedVersion 0 inserts a fresh
// game; anything else is a compare-and-swap on the games row. A stale
// version leaves every table untouched and reports ports.ErrConflict.
func (r GameRepo) SaveSnapshot(ctx context.Context, s *ship.Ship, expectedVersion int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gm := gameToModel(s)
		if expectedVersion == 0 {
			if err := tx.Create(&gm).Error; err != nil {
				return err
			}
		} else {
			res := tx.Model(&model.Game{}).
				Where("id = ? AND version = ?", s.ID, expectedVersion).
				Updates(map[string]any{
					"oxygen":           gm.Oxygen,
					"fuel":             gm.Fuel,
					"shuttle_bay_fuel": gm.ShuttleBayFuel,
					"torpedo_bay_fuel": gm.TorpedoBayFuel,
					"cycle":            gm.Cycle,
					"phase":            gm.Phase,
					"version":          gm.Version,
					"updated_at":       gm.UpdatedAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ports.ErrConflict
			}
		}

		for _, d := range s.Drones {
			dm, err := droneToModel(s, d)
			if err != nil {
				return fmt.Errorf("encode drone %s: %w", d.ID, err)
			}
			if err := tx.Save(&dm).Error; err != nil {
				return err
			}
		}
		for _, p := range s.Players {
			pm := model.Player{
				GameID:         s.ID,
				ID:             p.ID,
				Name:           p.Name,
				Alive:          p.Alive,
				RequestedSleep: p.RequestedSleep,
				DroneID:        p.DroneID,
			}
			if err := tx.Save(&pm).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r GameRepo) PatchPlayerSleep(ctx context.Context, gameID, playerID string, requested bool) error {
	res := r.db.WithContext(ctx).Model(&model.Player{}).
		Where("game_id = ? AND id = ?", gameID, playerID).
		Update("requested_sleep", requested)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r GameRepo) PatchDroneName(ctx context.Context, gameID, droneID, name string) error {
	res := r.db.WithContext(ctx).Model(&model.Drone{}).
		Where("game_id = ? AND id = ?", gameID, droneID).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r GameRepo) PatchDestroyQueue(ctx context.Context, gameID, droneID string, queued bool) error {
	res := r.db.WithContext(ctx).Model(&model.Drone{}).
		Where("game_id = ? AND id = ?", gameID, droneID).
		Update("pending_destroy", queued)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func gameToModel(s *ship.Ship) model.Game {
	return model.Game{
		ID:             s.ID,
		Oxygen:         int32(s.Oxygen),
		Fuel:           int32(s.Fuel),
		ShuttleBayFuel: int32(s.ShuttleBayFuel),
		TorpedoBayFuel: int32(s.TorpedoBayFuel),
		Cycle:          int32(s.Cycle),
		Phase:          string(s.Phase),
		Version:        s.Version,
		UpdatedAt:      s.UpdatedAt,
	}
}

func droneToModel(s *ship.Ship, d *ship.Drone) (model.Drone, error) {
	inventory, err := json.Marshal(d.Inventory)
	if err != nil {
		return model.Drone{}, err
	}
	dayMemory, err := json.Marshal(d.DayMemory)
	if err != nil {
		return model.Drone{}, err
	}
	transcript, err := json.Marshal(d.Transcript)
	if err != nil {
		return model.Drone{}, err
	}
	return model.Drone{
		GameID:         s.ID,
		ID:             d.ID,
		Name:           d.Name,
		FosterID:       d.FosterID,
		Room:           string(d.Room),
		Battery:        int32(d.Battery),
		Role:           string(d.Role),
		Inventory:      inventory,
		LongMemory:     d.LongMemory,
		DayMemory:      dayMemory,
		Transcript:     transcript,
		Destroyed:      d.Destroyed,
		HadActivity:    d.HadActivity,
		PendingDestroy: s.DestructionQueued(d.ID),
	}, nil
}

func droneFromModel(dm model.Drone) (*ship.Drone, error) {
	d := &ship.Drone{
		ID:          dm.ID,
		Name:        dm.Name,
		FosterID:    dm.FosterID,
		Room:        ship.Room(dm.Room),
		Battery:     int(dm.Battery),
		Role:        ship.Role(dm.Role),
		Inventory:   map[ship.Item]int{},
		LongMemory:  dm.LongMemory,
		Destroyed:   dm.Destroyed,
		HadActivity: dm.HadActivity,
	}
	if len(dm.Inventory) > 0 {
		if err := json.Unmarshal(dm.Inventory, &d.Inventory); err != nil {
			return nil, err
		}
	}
	if len(dm.DayMemory) > 0 {
		if err := json.Unmarshal(dm.DayMemory, &d.DayMemory); err != nil {
			return nil, err
		}
	}
	if len(dm.Transcript) > 0 {
		if err := json.Unmarshal(dm.Transcript, &d.Transcript); err != nil {
			return nil, err
		}
	}
	return d, nil
}
