package ship

import (
	"fmt"
	"math/rand"
	"time"
)

// NewShip builds a fresh game: one drone per player, all starting in the
// stasis room at full battery. Exactly one drone is the saboteur, picked by
// index; the players' own role text stays loyal on purpose, so fosters never
// learn their drone is the hostile one from their own record.
func NewShip(id string, playerIDs, playerNames []string, tun Tuning, rng *rand.Rand, now time.Time) *Ship {
	s := &Ship{
		ID:             id,
		Oxygen:         OxygenMax,
		Fuel:           0,
		ShuttleBayFuel: tun.ShuttleBayFuelStart,
		TorpedoBayFuel: tun.TorpedoBayFuelStart,
		Cycle:          1,
		Phase:          PhaseNight,
		Drones:         map[string]*Drone{},
		Players:        map[string]*Player{},
		Station:        Station{PendingDestroy: map[string]bool{}},
		Version:        1,
		UpdatedAt:      now,
	}

	saboteurIdx := 0
	if len(playerIDs) > 0 {
		saboteurIdx = rng.Intn(len(playerIDs))
	}

	for i, pid := range playerIDs {
		name := pid
		if i < len(playerNames) && playerNames[i] != "" {
			name = playerNames[i]
		}
		droneID := fmt.Sprintf("drone-%s", pid)
		role := RoleLoyal
		if i == saboteurIdx {
			role = RoleSaboteur
		}
		s.Players[pid] = &Player{
			ID:      pid,
			Name:    name,
			Alive:   true,
			DroneID: droneID,
			Role:    RoleLoyal,
		}
		s.Drones[droneID] = &Drone{
			ID:        droneID,
			Name:      fmt.Sprintf("Unit-%d", i+1),
			FosterID:  pid,
			Room:      RoomStasis,
			Battery:   BatteryMax,
			Role:      role,
			Inventory: map[Item]int{},
		}
	}
	return s
}

// Saboteurs counts drones carrying the hostile role. A well-formed game has
// exactly one.
func (s *Ship) Saboteurs() int {
	n := 0
	for _, d := range s.Drones {
		if d.Role == RoleSaboteur {
			n++
		}
	}
	return n
}
