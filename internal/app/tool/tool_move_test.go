package tool

import (
	"testing"

	"voidwake/internal/domain/ship"
)

func TestMoveRelocatesActor(t *testing.T) {
	s := testShip()
	tun := ship.DefaultTuning()
	out := mustExecute(s, KindMove, Args{Destination: ship.RoomEngine}, "d1", tun)
	if !out.Success || out.Visibility != VisibilityRoom {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if s.Drones["d1"].Room != ship.RoomEngine {
		t.Fatalf("actor must be in the engine room, got %s", s.Drones["d1"].Room)
	}
	if s.Drones["d1"].Battery != 100-tun.MoveCost {
		t.Fatalf("move cost not applied")
	}
}

func TestMoveRejectsInvalidRoom(t *testing.T) {
	s := testShip()
	out := mustExecute(s, KindMove, Args{Destination: ship.Room("bridge")}, "d1", ship.DefaultTuning())
	if out.Success {
		t.Fatalf("move must fail on an invalid room")
	}
	if s.Drones["d1"].Room != ship.RoomStasis {
		t.Fatalf("actor must not be relocated on failure")
	}
}

func TestTowMovesBothDrones(t *testing.T) {
	s := testShip()
	out := mustExecute(s, KindTow, Args{TargetID: "d2", Destination: ship.RoomCharging}, "d1", ship.DefaultTuning())
	if !out.Success || out.Visibility != VisibilityGlobal {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if s.Drones["d1"].Room != ship.RoomCharging || s.Drones["d2"].Room != ship.RoomCharging {
		t.Fatalf("both drones must end in the destination")
	}
}

func TestTowRequiresBattery(t *testing.T) {
	s := testShip()
	tun := ship.DefaultTuning()
	s.Drones["d1"].Battery = tun.TowCost - 1
	out := mustExecute(s, KindTow, Args{TargetID: "d2", Destination: ship.RoomCharging}, "d1", tun)
	if out.Success {
		t.Fatalf("tow must fail on insufficient battery")
	}
	if s.Drones["d2"].Room != ship.RoomStasis {
		t.Fatalf("target must not move on failure")
	}
}

func TestTowRequiresColocatedTarget(t *testing.T) {
	s := testShip()
	s.Drones["d2"].Room = ship.RoomEngine
	out := mustExecute(s, KindTow, Args{TargetID: "d2", Destination: ship.RoomCharging}, "d1", ship.DefaultTuning())
	if out.Success {
		t.Fatalf("tow must fail on a target elsewhere")
	}
}
