package tool

import (
	"math/rand"

	"voidwake/internal/domain/ship"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func testShip() *ship.Ship {
	return &ship.Ship{
		ID:             "g1",
		Oxygen:         ship.OxygenMax,
		Fuel:           0,
		ShuttleBayFuel: 60,
		TorpedoBayFuel: 40,
		Cycle:          1,
		Phase:          ship.PhaseDay,
		Players: map[string]*ship.Player{
			"p1": {ID: "p1", Name: "Ada", Alive: true, DroneID: "d1"},
			"p2": {ID: "p2", Name: "Ben", Alive: true, DroneID: "d2"},
		},
		Drones: map[string]*ship.Drone{
			"d1": {ID: "d1", Name: "Unit-1", FosterID: "p1", Room: ship.RoomStasis, Battery: 100, Role: ship.RoleLoyal, Inventory: map[ship.Item]int{}},
			"d2": {ID: "d2", Name: "Unit-2", FosterID: "p2", Room: ship.RoomStasis, Battery: 100, Role: ship.RoleSaboteur, Inventory: map[ship.Item]int{}},
		},
		Station: ship.Station{PendingDestroy: map[string]bool{}},
	}
}

func mustExecute(s *ship.Ship, kind Kind, args Args, actorID string, tun ship.Tuning) Outcome {
	out, err := Execute(kind, args, actorID, s, tun, testRand())
	if err != nil {
		panic(err)
	}
	return out
}
